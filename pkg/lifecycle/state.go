package lifecycle

// State represents the orchestrator's lifecycle state.
type State int

const (
	// StateIdle means no coordinated startup has run, or Close finished.
	StateIdle State = iota

	// StateStarting means Refresh is driving participant startup.
	StateStarting

	// StateRunning means Refresh completed and participants are managed.
	StateRunning

	// StateStopping means Close is driving participant shutdown.
	StateStopping
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

// StateEmitter is called when the orchestrator's state changes. The
// runtime uses it to publish lifecycle transition events on the bus.
type StateEmitter interface {
	OnStateChange(previous, current State, reason string)
}
