package runtime

import (
	"github.com/vessel-labs/vessel/pkg/event"
	"github.com/vessel-labs/vessel/pkg/lifecycle"
	"github.com/vessel-labs/vessel/pkg/log"
)

// SetupEvent announces that the container is assembling its managed
// components, before any participant starts.
type SetupEvent struct {
	event.Base
}

// StartedEvent announces that coordinated startup completed and the
// container is ready.
type StartedEvent struct {
	event.Base
}

// StoppedEvent announces that coordinated shutdown is beginning.
type StoppedEvent struct {
	event.Base
}

// ClosedEvent announces that the container finished shutting down.
type ClosedEvent struct {
	event.Base
}

// FailedEvent announces that coordinated startup failed.
type FailedEvent struct {
	event.Base
	Reason error
}

// StateChangeEvent mirrors orchestrator state transitions onto the bus.
type StateChangeEvent struct {
	event.Base
	Previous lifecycle.State
	Current  lifecycle.State
	Reason   string
}

// busEmitter republishes orchestrator state changes as bus events.
// Listener errors during these publishes are logged, not propagated.
type busEmitter struct {
	source interface{}
	bus    *event.Bus
	logger log.Logger
}

func (b *busEmitter) OnStateChange(previous, current lifecycle.State, reason string) {
	evt := StateChangeEvent{
		Base:     event.NewBase(b.source),
		Previous: previous,
		Current:  current,
		Reason:   reason,
	}
	if err := b.bus.Publish(evt); err != nil {
		b.logger.Error("state change listener failed", log.Err(err))
	}
}
