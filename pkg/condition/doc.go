// Package condition provides declarative admission predicates for managed
// components.
//
// A candidate definition carries zero or more condition Sets; each Set is
// an ordered AND over Rules, evaluated against a read-only Context backed
// by the environment and the component registry. Rules cover property
// matching, type and component presence, profile membership, runtime
// version ranges, resource existence, and expressions.
//
// # Usage
//
//	rules := condition.Set{
//	    condition.OnProperty("server", []string{"ssl.enabled"}, "true", false),
//	    condition.OnProfile("prod"),
//	}
//
//	eval := condition.NewEvaluator(logger)
//	ok, err := eval.ShouldInclude(candidate, ctx)
//
// Provider errors raised during evaluation are not masked; they propagate
// to the registration pipeline and are fatal to that one candidate.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package condition
