// Package lifecycle provides the phased startup/shutdown orchestrator for
// managed components.
//
// Participants implement Start/Stop/IsRunning; phased participants add a
// startup phase and an auto-startup flag, and may signal shutdown
// completion asynchronously through AsyncStopper. The orchestrator
// discovers participants from an explicit source query, starts them in
// ascending phase order, and stops the full discovered list in exact
// reverse order, awaiting each participant's completion before moving on.
//
// # Usage
//
//	orch := lifecycle.NewOrchestrator(registry, lifecycle.Config{}, logger, emitter)
//	if err := orch.Refresh(ctx); err != nil {
//	    return err
//	}
//	defer orch.Close(context.Background())
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
