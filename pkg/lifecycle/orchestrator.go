package lifecycle

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/vessel-labs/vessel/pkg/log"
)

// Common lifecycle errors.
var (
	ErrAlreadyRunning = errors.New("lifecycle: already running")
	ErrStopTimeout    = errors.New("lifecycle: participant stop timeout")
)

// Source supplies the participants the orchestrator manages. The registry
// implements it; discovery is an explicit query, not a scan.
type Source interface {
	Participants() []Participant
}

// Config holds orchestrator settings.
type Config struct {
	// StopTimeout bounds how long Close waits for any single
	// participant's completion signal. Zero waits indefinitely, which is
	// the library default: the orchestrator never abandons a participant
	// unless the caller opted into a deadline.
	StopTimeout time.Duration
}

// Orchestrator drives coordinated startup and shutdown of lifecycle
// participants discovered from a Source.
//
// Refresh takes a point-in-time snapshot of participants, starts phased
// participants with auto-startup in ascending phase order, and transitions
// to Running. Close iterates the full snapshot in exact reverse order,
// awaiting each participant's completion before moving to the next, and
// transitions back to Idle. The orchestrator is re-entrant: it may be
// refreshed again after Close.
//
// Callers serialize Refresh/Close; the internal lock protects only the
// orchestrator-owned state.
type Orchestrator struct {
	mu      sync.RWMutex
	cfg     Config
	source  Source
	logger  log.Logger
	emitter StateEmitter
	state   State
	ordered []Participant
}

// NewOrchestrator creates an orchestrator over the given source. A nil
// logger is replaced by a no-op logger; emitter may be nil.
func NewOrchestrator(source Source, cfg Config, logger log.Logger, emitter StateEmitter) *Orchestrator {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Orchestrator{
		cfg:     cfg,
		source:  source,
		logger:  logger,
		emitter: emitter,
		state:   StateIdle,
	}
}

// State returns the current orchestrator state.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Participants returns the cached ordered snapshot. Empty until Refresh
// or Close has discovered.
func (o *Orchestrator) Participants() []Participant {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.ordered)
}

// Refresh discovers participants if none are cached, starts phased
// auto-startup participants in ascending phase order, and transitions to
// Running. A start failure unwinds already-started participants in
// reverse order and leaves the orchestrator Idle.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return ErrAlreadyRunning
	}
	o.mu.Unlock()

	o.transition(StateStarting, "refresh requested")

	snapshot := o.snapshot()

	var started []Participant
	for _, p := range snapshot {
		phased, ok := p.(Phased)
		if !ok || !phased.AutoStartup() {
			continue
		}
		o.logger.Debug("starting participant", log.Int("phase", phased.Phase()))
		if err := p.Start(ctx); err != nil {
			o.logger.Error("participant start failed", log.Err(err))
			o.unwind(ctx, started)
			o.release()
			o.transition(StateIdle, "refresh failed")
			return err
		}
		started = append(started, p)
	}

	o.transition(StateRunning, "refresh complete")
	return nil
}

// Close stops all discovered participants in exact reverse of the
// startup/sort order and transitions back to Idle. Calling Close when the
// orchestrator is not Running is a no-op.
//
// Each participant's completion is awaited before the next one is
// stopped: plain participants complete when Stop returns, AsyncStopper
// participants when they invoke the completion callback. With a zero
// StopTimeout a participant that never signals stalls shutdown
// indefinitely. With a deadline, a stalled participant is skipped and
// Close reports ErrStopTimeout after finishing the rest.
func (o *Orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateRunning {
		o.mu.Unlock()
		return nil
	}
	o.mu.Unlock()

	o.transition(StateStopping, "close requested")

	snapshot := o.snapshot()

	var stalled bool
	for i := len(snapshot) - 1; i >= 0; i-- {
		if !o.stopOne(ctx, snapshot[i]) {
			stalled = true
		}
	}

	o.release()
	o.transition(StateIdle, "close complete")

	if stalled {
		return ErrStopTimeout
	}
	return nil
}

// stopOne stops a single participant and awaits its completion. It
// reports false when the participant failed to signal within the stop
// deadline.
func (o *Orchestrator) stopOne(ctx context.Context, p Participant) bool {
	as, ok := p.(AsyncStopper)
	if !ok {
		if err := p.Stop(ctx); err != nil {
			o.logger.Error("participant stop failed", log.Err(err))
		}
		return true
	}

	done := make(chan struct{})
	var once sync.Once
	as.StopAsync(ctx, func() {
		once.Do(func() { close(done) })
	})

	if o.cfg.StopTimeout <= 0 {
		<-done
		return true
	}

	select {
	case <-done:
		return true
	case <-time.After(o.cfg.StopTimeout):
		o.logger.Warn("participant did not signal stop completion",
			log.Duration("timeout", o.cfg.StopTimeout))
		return false
	}
}

// snapshot returns the cached participant list, discovering one when the
// cache is empty. Phased participants come first, sorted ascending by
// phase; the sort is stable, so equal-phase participants keep the
// source's effective order. Non-phased participants follow in discovery
// order.
func (o *Orchestrator) snapshot() []Participant {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.ordered) == 0 && o.source != nil {
		discovered := o.source.Participants()

		var phased, plain []Participant
		for _, p := range discovered {
			if _, ok := p.(Phased); ok {
				phased = append(phased, p)
			} else {
				plain = append(plain, p)
			}
		}

		slices.SortStableFunc(phased, func(a, b Participant) int {
			pa, pb := a.(Phased).Phase(), b.(Phased).Phase()
			switch {
			case pa < pb:
				return -1
			case pa > pb:
				return 1
			}
			return 0
		})

		o.ordered = append(phased, plain...)
		o.logger.Debug("discovered lifecycle participants",
			log.Int("phased", len(phased)),
			log.Int("plain", len(plain)))
	}
	return slices.Clone(o.ordered)
}

// unwind stops already-started participants in reverse order after a
// start failure. Best effort: stop errors are logged, not returned.
func (o *Orchestrator) unwind(ctx context.Context, started []Participant) {
	for i := len(started) - 1; i >= 0; i-- {
		if err := started[i].Stop(ctx); err != nil {
			o.logger.Error("participant unwind stop failed", log.Err(err))
		}
	}
}

// release drops the cached snapshot.
func (o *Orchestrator) release() {
	o.mu.Lock()
	o.ordered = nil
	o.mu.Unlock()
}

// transition moves to a new state and emits the change outside the lock.
func (o *Orchestrator) transition(newState State, reason string) {
	o.mu.Lock()
	old := o.state
	o.state = newState
	o.mu.Unlock()

	if o.emitter != nil {
		o.emitter.OnStateChange(old, newState, reason)
	}
	o.logger.Info("lifecycle state transition",
		log.String("from", old.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
}
