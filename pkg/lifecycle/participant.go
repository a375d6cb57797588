package lifecycle

import "context"

// Participant is the lifecycle contract for managed components.
//
// Implementations must make Start a no-op when already running and Stop a
// no-op when already stopped; the orchestrator calls both without checking
// first.
type Participant interface {
	// Start brings the participant into the running state.
	Start(ctx context.Context) error

	// Stop brings the participant into the stopped state. Returning from
	// Stop signals completion for non-phased participants.
	Stop(ctx context.Context) error

	// IsRunning reports whether the participant is currently running.
	IsRunning() bool
}

// Phased is a Participant that takes part in phase-ordered startup.
// Startup runs in ascending phase order; shutdown in exact reverse.
type Phased interface {
	Participant

	// Phase returns the startup phase. Lower phases start first.
	Phase() int

	// AutoStartup reports whether the orchestrator should start this
	// participant during Refresh. Participants returning false stay
	// stopped until started by external code.
	AutoStartup() bool
}

// AsyncStopper is implemented by phased participants whose shutdown
// completes asynchronously. The orchestrator blocks the shutdown sequence
// until done is invoked, so a participant that never signals stalls every
// participant ordered before it in startup order. done must be called
// exactly once.
type AsyncStopper interface {
	StopAsync(ctx context.Context, done func())
}

// DefaultPhase provides the default phase and auto-startup answers for
// phased participants. Embed it and override what differs.
type DefaultPhase struct{}

// Phase returns the default phase 0.
func (DefaultPhase) Phase() int { return 0 }

// AutoStartup reports true: phased participants start automatically
// unless they opt out.
func (DefaultPhase) AutoStartup() bool { return true }
