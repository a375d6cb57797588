// Package runtime provides the embeddable inversion-of-control container.
//
// A Runtime wires the condition evaluator, component registry, phased
// lifecycle orchestrator and event bus together behind a small API:
//
//	rt, err := runtime.New(runtime.DefaultConfig(),
//	    runtime.WithLogger(log.NewZerologAdapter()),
//	)
//	if err != nil {
//	    return err
//	}
//	if _, err := rt.Register(&registry.Definition{
//	    Name:      "mailer",
//	    Component: mailer,
//	    ConditionSets: []condition.Set{{
//	        condition.OnProperty("mail", []string{"enabled"}, "true", false),
//	    }},
//	}); err != nil {
//	    return err
//	}
//	if err := rt.Start(ctx); err != nil {
//	    return err
//	}
//	defer rt.Stop(context.Background())
//
// Start publishes the canonical setup/started events around orchestrated
// startup; Stop publishes stopped/closed around reverse-order shutdown.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package runtime
