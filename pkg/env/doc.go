// Package env provides the default collaborator implementations consumed
// by condition evaluation and the runtime: a koanf-backed property store
// with an active-profile set, a filesystem resource resolver, a runtime
// version descriptor, and a placeholder expression evaluator.
//
// # Usage
//
//	environment := env.New()
//	if err := environment.LoadFile("application.yaml"); err != nil {
//	    return err
//	}
//	environment.LoadEnviron("VESSEL_")
//	environment.ActivateProfiles("prod")
//
// Property keys are dot-delimited; VESSEL_SERVER_PORT maps to server.port.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package env
