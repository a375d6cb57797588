// Package event provides the typed event bus managed components publish
// and subscribe through.
//
// Listeners are registered directly or by name; named registrations are
// resolved from the component registry lazily at first dispatch, and a
// resolution failure leaves the registration inert rather than erroring.
// The dispatch list is kept sorted through pkg/order, and Publish invokes
// accepting listeners sequentially in that order, never in parallel, so
// ordering guarantees hold.
//
// # Usage
//
//	bus := event.NewBus(registry, logger)
//	bus.AddListener(event.Registration{
//	    Listener: event.ListenerOf(func(e StartedEvent) error {
//	        // react
//	        return nil
//	    }),
//	})
//	err := bus.Publish(evt)
//
// Publish is fail-fast: the first listener error is returned and aborts
// delivery to listeners ordered after it.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package event
