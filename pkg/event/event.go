package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is the contract for everything published on the bus. Events are
// immutable after creation: subtypes carry their payload as values set at
// construction time.
type Event interface {
	// Source returns the object the event originated from.
	Source() interface{}

	// Time returns the event creation time.
	Time() time.Time
}

// Base carries the common event fields. Embed it in concrete event types
// and construct it with NewBase.
type Base struct {
	id     string
	source interface{}
	time   time.Time
}

// NewBase creates the common part of an event with a fresh id and the
// current UTC time.
func NewBase(source interface{}) Base {
	return Base{
		id:     uuid.NewString(),
		source: source,
		time:   time.Now().UTC(),
	}
}

// ID returns the unique event id.
func (b Base) ID() string { return b.id }

// Source returns the object the event originated from.
func (b Base) Source() interface{} { return b.source }

// Time returns the event creation time.
func (b Base) Time() time.Time { return b.time }
