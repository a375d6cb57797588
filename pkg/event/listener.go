package event

// Listener receives published events. Listeners may additionally implement
// order.Ordered or order.Prioritized to control their dispatch position,
// and TypedListener to narrow which events they accept.
type Listener interface {
	OnEvent(e Event) error
}

// TypedListener narrows the events a listener accepts. Listeners without
// it accept every event.
type TypedListener interface {
	Listener

	// Accepts reports whether the listener wants this event.
	Accepts(e Event) bool
}

// ListenerFunc adapts a plain function into a Listener accepting all
// events.
type ListenerFunc func(Event) error

// OnEvent calls the function.
func (f ListenerFunc) OnEvent(e Event) error { return f(e) }

// ListenerOf adapts a handler for a concrete event type into a
// TypedListener whose acceptance predicate is a structural type match.
// The returned value has pointer identity, so the same value passed to
// RemoveListener matches the registration.
func ListenerOf[T Event](fn func(T) error) TypedListener {
	return &typedListener[T]{fn: fn}
}

type typedListener[T Event] struct {
	fn func(T) error
}

func (t *typedListener[T]) Accepts(e Event) bool {
	_, ok := e.(T)
	return ok
}

func (t *typedListener[T]) OnEvent(e Event) error {
	ev, ok := e.(T)
	if !ok {
		return nil
	}
	return t.fn(ev)
}
