package runtime

import (
	"github.com/vessel-labs/vessel/pkg/condition"
	"github.com/vessel-labs/vessel/pkg/env"
	"github.com/vessel-labs/vessel/pkg/event"
	"github.com/vessel-labs/vessel/pkg/log"
)

// Option configures optional behavior of the runtime.
type Option func(*options)

// options holds the optional collaborators for a Runtime instance.
type options struct {
	logger      log.Logger
	environment *env.Environment
	resources   condition.ResourceResolver
	runtimeInfo condition.RuntimeInfo
	expressions condition.ExpressionEvaluator
	listeners   []event.Registration
}

// defaultOptions returns options with sensible defaults. Collaborators
// left nil are built from the Config during New.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEnvironment sets a pre-built environment, overriding the property
// files, env prefix and profiles from the Config.
func WithEnvironment(environment *env.Environment) Option {
	return func(o *options) {
		o.environment = environment
	}
}

// WithResources sets a custom resource resolver for resource-exists
// condition rules.
func WithResources(resources condition.ResourceResolver) Option {
	return func(o *options) {
		o.resources = resources
	}
}

// WithRuntimeInfo sets a custom runtime descriptor for version-in-range
// condition rules.
func WithRuntimeInfo(info condition.RuntimeInfo) Option {
	return func(o *options) {
		o.runtimeInfo = info
	}
}

// WithExpressionEvaluator sets a custom evaluator for expression
// condition rules. The default expands ${...} placeholders against the
// environment.
func WithExpressionEvaluator(expressions condition.ExpressionEvaluator) Option {
	return func(o *options) {
		o.expressions = expressions
	}
}

// WithListener registers an event listener on the bus at construction
// time, before any lifecycle event is published.
func WithListener(reg event.Registration) Option {
	return func(o *options) {
		o.listeners = append(o.listeners, reg)
	}
}
