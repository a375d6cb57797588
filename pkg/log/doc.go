// Package log provides structured logging interfaces and adapters.
//
// This package defines a minimal Logger interface used throughout vessel,
// along with a zerolog-based implementation and a no-op logger for
// embedded use.
//
// # Usage
//
//	logger := log.NewZerologAdapter()
//	logger.Info("container started", log.Int("components", 4))
//
// Child loggers carry fields on every message:
//
//	cl := logger.With(log.Component("event-bus"))
//	cl.Debug("listener registered")
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
