// Package vessel provides an embeddable inversion-of-control container
// with conditional registration, deterministic ordering, a phased
// lifecycle and an ordered event bus.
//
// Example usage:
//
//	rt, err := vessel.New(vessel.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := rt.Register(&vessel.Definition{
//	    Name:      "cache",
//	    Component: cache,
//	    ConditionSets: []vessel.ConditionSet{{
//	        vessel.OnProperty("cache", []string{"enabled"}, "true", false),
//	    }},
//	}); err != nil {
//	    log.Fatal(err)
//	}
//	if err := rt.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Stop(context.Background())
package vessel

import (
	"github.com/vessel-labs/vessel/pkg/condition"
	"github.com/vessel-labs/vessel/pkg/registry"
	"github.com/vessel-labs/vessel/pkg/runtime"
)

// Runtime is the container. Use New() to create one.
type Runtime = runtime.Runtime

// Config holds the container configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = runtime.Config

// Option configures a Runtime at construction time.
type Option = runtime.Option

// Definition describes a candidate component for registration.
type Definition = registry.Definition

// ConditionSet is a conjunction of registration rules.
type ConditionSet = condition.Set

// New creates a container with the given configuration.
func New(cfg Config, opts ...Option) (*Runtime, error) {
	return runtime.New(cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return runtime.DefaultConfig()
}

// Functional options re-exported from the runtime module.
var (
	WithLogger              = runtime.WithLogger
	WithEnvironment         = runtime.WithEnvironment
	WithResources           = runtime.WithResources
	WithRuntimeInfo         = runtime.WithRuntimeInfo
	WithExpressionEvaluator = runtime.WithExpressionEvaluator
	WithListener            = runtime.WithListener
)

// Registration rule constructors re-exported from the condition module.
var (
	OnProperty         = condition.OnProperty
	OnTypePresent      = condition.OnTypePresent
	OnTypeAbsent       = condition.OnTypeAbsent
	OnComponent        = condition.OnComponent
	OnMissingComponent = condition.OnMissingComponent
	OnProfile          = condition.OnProfile
	NotOnProfile       = condition.NotOnProfile
	OnVersion          = condition.OnVersion
	OnVersionRange     = condition.OnVersionRange
	OnResource         = condition.OnResource
	OnExpression       = condition.OnExpression
)
