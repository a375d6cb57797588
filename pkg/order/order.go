package order

import "math"

// Unordered is the sentinel effective order for entities that carry no
// order information. It sorts after every explicit order value.
const Unordered = math.MaxInt

// Default is the effective order assigned by convention to entities that
// want to sort with the bulk of ordered entities without caring about
// their exact position.
const Default = 0

// Ordered is the capability interface for entities that expose their own
// effective order. Lower values sort first.
type Ordered interface {
	Order() int
}

// Prioritized marks an entity as belonging to the priority tier. Among
// entities with identical effective order, priority-tier entities sort
// before the rest. It never overrides a difference in effective order.
type Prioritized interface {
	Prioritized() bool
}

// Explicit wraps a value with an explicit numeric order marker. The marker
// takes precedence over any Ordered capability the wrapped value
// implements.
type Explicit struct {
	Value    interface{}
	Rank     int
	Priority bool
}

// Order returns the explicit rank.
func (e Explicit) Order() int { return e.Rank }

// Prioritized reports whether the entity is in the priority tier.
func (e Explicit) Prioritized() bool { return e.Priority }

// Unwrap returns the wrapped value, or v itself when v is not wrapped.
func Unwrap(v interface{}) interface{} {
	switch m := v.(type) {
	case Explicit:
		return m.Value
	case *Explicit:
		return m.Value
	}
	return v
}

// Of derives the effective order of v: explicit marker first, then the
// Ordered capability, then Unordered.
func Of(v interface{}) int {
	switch m := v.(type) {
	case Explicit:
		return m.Rank
	case *Explicit:
		return m.Rank
	}
	if o, ok := v.(Ordered); ok {
		return o.Order()
	}
	return Unordered
}

// IsPrioritized reports whether v belongs to the priority tier.
func IsPrioritized(v interface{}) bool {
	switch m := v.(type) {
	case Explicit:
		return m.Priority
	case *Explicit:
		return m.Priority
	}
	if p, ok := v.(Prioritized); ok {
		return p.Prioritized()
	}
	return false
}
