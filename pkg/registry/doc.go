// Package registry stores managed component definitions and gates their
// admission through condition evaluation.
//
// A Definition couples a component instance with its declarative
// metadata: name, declared type, condition sets, and ordering markers.
// Lifecycle and listener capabilities are recorded once at admission, so
// the orchestrator and the event bus discover components through explicit
// queries instead of scanning.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package registry
