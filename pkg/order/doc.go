// Package order provides deterministic ordering for heterogeneous entities.
//
// An entity's effective order is derived, in precedence: an explicit
// numeric marker (Explicit), the Ordered capability, or the Unordered
// sentinel which sorts last. A secondary priority tier (Prioritized)
// breaks ties among entities of equal effective order.
//
// The comparator is used uniformly by the event bus dispatch list, the
// lifecycle orchestrator's phase tie-breaking, and any manager that
// aggregates pluggable strategies needing deterministic precedence.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package order
