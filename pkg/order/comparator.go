package order

import "slices"

// Compare orders two arbitrary entities by effective order, with the
// priority tier breaking ties among equal effective orders. Entities that
// compare equal keep their relative input order under Sort (stable).
func Compare(a, b interface{}) int {
	oa, ob := Of(a), Of(b)
	if oa != ob {
		if oa < ob {
			return -1
		}
		return 1
	}
	pa, pb := IsPrioritized(a), IsPrioritized(b)
	switch {
	case pa && !pb:
		return -1
	case !pa && pb:
		return 1
	}
	return 0
}

// Sort sorts items in place by effective order, ascending. The sort is
// stable: entities with equal keys keep their original encounter order,
// including entities that carry no order information at all.
func Sort[E any](items []E) {
	slices.SortStableFunc(items, func(a, b E) int {
		return Compare(a, b)
	})
}

// ReverseSort sorts items in place into the exact reverse of the Sort
// sequence. It is used for shutdown ordering, where participants must stop
// in the reverse of their startup order.
func ReverseSort[E any](items []E) {
	Sort(items)
	slices.Reverse(items)
}
