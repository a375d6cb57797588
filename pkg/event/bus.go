package event

import (
	"reflect"
	"slices"
	"sync"

	"github.com/vessel-labs/vessel/pkg/log"
	"github.com/vessel-labs/vessel/pkg/order"
)

// Resolver resolves named listener registrations from the component
// registry at dispatch time.
type Resolver interface {
	Resolve(name string) (interface{}, bool)
}

// resourceRemover is implemented by resolvers that can also release the
// named resource when a named registration is removed from the bus. The
// registry implements it.
type resourceRemover interface {
	Remove(name string) bool
}

// Registration describes a listener to add or remove. Either identity
// field may be set: a listener with a name is a named binding, a bare
// listener an anonymous entry, and a bare name a pending binding resolved
// lazily at first dispatch. Order, when set, is an explicit order marker
// taking precedence over any order capability the listener implements.
type Registration struct {
	Listener Listener
	Name     string
	Order    *int
	Priority bool
}

// entry is a single dispatch-list slot. Named entries without a listener
// are pending until first dispatch; a failed resolution is recorded and
// leaves the entry inert rather than dropping it, so stale names stay
// visible for debugging.
type entry struct {
	listener Listener
	name     string
	order    *int
	priority bool
	pending  bool
	failed   bool
}

// orderable returns the value the comparator should inspect. Pending and
// failed entries have no order information and sort last.
func (e *entry) orderable() interface{} {
	if e.order != nil {
		return order.Explicit{Value: e.listener, Rank: *e.order, Priority: e.priority}
	}
	if e.listener == nil {
		return nil
	}
	if e.priority {
		return order.Explicit{Value: e.listener, Rank: order.Of(e.listener), Priority: true}
	}
	return e.listener
}

// Bus registers typed event listeners and dispatches published events to
// them sequentially in deterministic order.
//
// The dispatch list is bus-owned state with an explicit lifecycle: entries
// persist until removed or RemoveAll. Callers serialize registration
// calls; the internal lock protects only the list itself.
type Bus struct {
	mu       sync.Mutex
	resolver Resolver
	logger   log.Logger
	entries  []*entry
}

// NewBus creates a bus. resolver may be nil when named registrations are
// not used; a nil logger is replaced by a no-op logger.
func NewBus(resolver Resolver, logger log.Logger) *Bus {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Bus{resolver: resolver, logger: logger}
}

// AddListener adds a registration to the dispatch list and re-sorts it.
// Listener plus name binds the name to the instance; a bare listener is
// anonymous; a bare name becomes a pending entry resolved at first
// dispatch.
func (b *Bus) AddListener(reg Registration) {
	if reg.Listener == nil && reg.Name == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, &entry{
		listener: reg.Listener,
		name:     reg.Name,
		order:    reg.Order,
		priority: reg.Priority,
		pending:  reg.Listener == nil,
	})
	b.sortLocked()
}

// RemoveListener removes entries matching the registration: by listener
// identity, by name, or both. Identity covers pointers, funcs and
// comparable values; an uncomparable value listener must be registered
// under a name to be removable. Removing by name also releases the
// registry-held resource when the resolver supports it. Removing a
// listener that was never added is a no-op.
func (b *Bus) RemoveListener(reg Registration) {
	b.mu.Lock()
	b.entries = slices.DeleteFunc(b.entries, func(e *entry) bool {
		if reg.Listener != nil && !sameListener(e.listener, reg.Listener) {
			return false
		}
		if reg.Name != "" && e.name != reg.Name {
			return false
		}
		return reg.Listener != nil || reg.Name != ""
	})
	b.sortLocked()
	b.mu.Unlock()

	if reg.Name != "" {
		if rm, ok := b.resolver.(resourceRemover); ok {
			rm.Remove(reg.Name)
		}
	}
}

// RemoveListenersMatching removes every entry matching the supplied
// predicates. When both predicates are given, an entry must match both.
func (b *Bus) RemoveListenersMatching(listenerPred func(Listener) bool, namePred func(string) bool) {
	if listenerPred == nil && namePred == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = slices.DeleteFunc(b.entries, func(e *entry) bool {
		if listenerPred != nil && !listenerPred(e.listener) {
			return false
		}
		if namePred != nil && !namePred(e.name) {
			return false
		}
		return true
	})
	b.sortLocked()
}

// RemoveAll clears every entry.
func (b *Bus) RemoveAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// Len returns the number of entries, pending and failed included.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Publish dispatches the event to each accepting listener sequentially in
// sort order. Pending named entries are resolved first; a resolution
// failure is recorded and the entry skipped, never surfaced.
//
// Dispatch is fail-fast: the first listener error aborts delivery to every
// listener ordered after it and is returned to the caller. Callers that
// need per-listener isolation wrap their listeners accordingly.
func (b *Bus) Publish(e Event) error {
	targets := b.resolveAndSnapshot()

	for _, l := range targets {
		if tl, ok := l.(TypedListener); ok && !tl.Accepts(e) {
			continue
		}
		if err := l.OnEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// resolveAndSnapshot resolves pending entries, re-sorts if any resolution
// changed the list, and returns the dispatchable listeners in order.
func (b *Bus) resolveAndSnapshot() []Listener {
	b.mu.Lock()
	defer b.mu.Unlock()

	resolved := false
	for _, e := range b.entries {
		if !e.pending || e.failed {
			continue
		}
		if b.resolver == nil {
			e.failed = true
			b.logger.Warn("named listener has no resolver", log.String("name", e.name))
			continue
		}
		v, ok := b.resolver.Resolve(e.name)
		if !ok {
			e.failed = true
			b.logger.Warn("named listener not resolvable", log.String("name", e.name))
			continue
		}
		l, ok := v.(Listener)
		if !ok {
			e.failed = true
			b.logger.Warn("named component is not a listener", log.String("name", e.name))
			continue
		}
		e.listener = l
		e.pending = false
		resolved = true
	}
	if resolved {
		b.sortLocked()
	}

	out := make([]Listener, 0, len(b.entries))
	for _, e := range b.entries {
		if e.listener != nil {
			out = append(out, e.listener)
		}
	}
	return out
}

// sameListener compares listener identity without panicking on
// uncomparable dynamic types such as ListenerFunc.
func sameListener(a, b Listener) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func && rb.Kind() == reflect.Func {
		return ra.Pointer() == rb.Pointer()
	}
	if !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}

// sortLocked re-sorts the dispatch list by effective listener order.
// Caller holds the lock. The sort is stable, so equal-order listeners
// dispatch in insertion order.
func (b *Bus) sortLocked() {
	slices.SortStableFunc(b.entries, func(a, c *entry) int {
		return order.Compare(a.orderable(), c.orderable())
	})
}
