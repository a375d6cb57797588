package condition

import version "github.com/hashicorp/go-version"

// Environment exposes property lookup and profile membership to condition
// evaluation. Implementations must be read-only from the evaluator's
// perspective.
type Environment interface {
	// Property returns the raw property value for key, and whether the
	// key is present at all.
	Property(key string) (string, bool)

	// PropertyOr returns the property value for key, or def when absent.
	PropertyOr(key, def string) string

	// IsProfileActive reports whether the named profile is active.
	IsProfileActive(name string) bool
}

// Registry exposes component-presence queries to condition evaluation.
// The container's definition registry implements it.
type Registry interface {
	// ContainsName reports whether a component is registered under name.
	ContainsName(name string) bool

	// ContainsType reports whether any component of the given declared
	// type is registered.
	ContainsType(typeName string) bool

	// Resolve returns the component registered under name.
	Resolve(name string) (interface{}, bool)
}

// ResourceResolver answers resource-existence queries for ResourceExists
// rules.
type ResourceResolver interface {
	Exists(path string) bool
}

// RuntimeInfo describes the running platform for version-in-range rules.
type RuntimeInfo interface {
	CurrentVersion() *version.Version
}

// ExpressionEvaluator evaluates Expression rules against the environment's
// property and placeholder resolution.
type ExpressionEvaluator interface {
	Evaluate(text string, env Environment) (bool, error)
}

// Context is the read-only facade a condition rule is evaluated against.
// Evaluation never mutates the context or anything reachable through it.
//
// A rule that needs a capability left nil here fails evaluation with an
// error: the evaluator assumes context and registry are well-formed, and
// provider failures are caller-visible.
type Context struct {
	Environment Environment
	Registry    Registry
	Resources   ResourceResolver
	Runtime     RuntimeInfo
	Expressions ExpressionEvaluator
}
