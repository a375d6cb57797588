package condition

import (
	"fmt"

	version "github.com/hashicorp/go-version"

	"github.com/vessel-labs/vessel/pkg/log"
)

// Conditional is implemented by candidate definitions carrying condition
// sets. A candidate with no sets is unconditionally included.
type Conditional interface {
	Conditions() []Set
}

// Evaluator evaluates the condition sets attached to a candidate
// definition against a Context.
//
// Evaluation is AND across sets and AND across rules within a set, in
// declaration order, short-circuiting on the first false rule. An error
// raised while evaluating one rule is never masked: the evaluator assumes
// the context and registry are well-formed, and provider failures are
// caller-visible and fatal to the registration of that one candidate.
type Evaluator struct {
	logger log.Logger
}

// NewEvaluator creates an evaluator. A nil logger is replaced by a no-op
// logger.
func NewEvaluator(logger log.Logger) *Evaluator {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Evaluator{logger: logger}
}

// ShouldInclude reports whether the candidate's condition sets all match
// against ctx. A candidate with zero sets is included.
func (e *Evaluator) ShouldInclude(candidate Conditional, ctx *Context) (bool, error) {
	if ctx == nil {
		return false, fmt.Errorf("condition: nil context")
	}
	for _, set := range candidate.Conditions() {
		ok, err := e.evaluateSet(set, ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (e *Evaluator) evaluateSet(set Set, ctx *Context) (bool, error) {
	for _, rule := range set {
		ok, err := e.evaluateRule(rule, ctx)
		if err != nil {
			return false, fmt.Errorf("condition: %s rule: %w", rule.Kind, err)
		}
		if !ok {
			e.logger.Debug("condition rule did not match",
				log.String("kind", rule.Kind.String()))
			return false, nil
		}
	}
	return true, nil
}

func (e *Evaluator) evaluateRule(rule Rule, ctx *Context) (bool, error) {
	switch rule.Kind {
	case KindPropertyMatch:
		return e.matchProperty(rule.Property, ctx)
	case KindTypePresent:
		return e.matchTypes(rule.Type, ctx, true)
	case KindTypeAbsent:
		return e.matchTypes(rule.Type, ctx, false)
	case KindComponentPresent:
		return e.matchComponents(rule.Component, ctx, true)
	case KindComponentAbsent:
		return e.matchComponents(rule.Component, ctx, false)
	case KindProfileActive:
		return e.matchProfiles(rule.Profile, ctx)
	case KindVersionInRange:
		return e.matchVersion(rule.Version, ctx)
	case KindResourceExists:
		return e.matchResource(rule.Resource, ctx)
	case KindExpression:
		return e.matchExpression(rule.Expression, ctx)
	default:
		return false, fmt.Errorf("unsupported rule kind %d", rule.Kind)
	}
}

func (e *Evaluator) matchProperty(m *PropertyMatch, ctx *Context) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("missing payload")
	}
	if ctx.Environment == nil {
		return false, fmt.Errorf("no environment in context")
	}

	anyPresent := false
	for _, name := range m.Names {
		key := name
		if m.Prefix != "" {
			key = m.Prefix + "." + name
		}
		value, present := ctx.Environment.Property(key)
		if !present {
			continue
		}
		anyPresent = true
		if value != m.ExpectedValue {
			return false, nil
		}
	}
	if !anyPresent {
		return m.MatchIfMissing, nil
	}
	return true, nil
}

func (e *Evaluator) matchTypes(m *TypeMatch, ctx *Context, wantPresent bool) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("missing payload")
	}
	if ctx.Registry == nil {
		return false, fmt.Errorf("no registry in context")
	}

	if wantPresent {
		for _, t := range m.TypeNames {
			if ctx.Registry.ContainsType(t) {
				return true, nil
			}
		}
		return false, nil
	}
	for _, t := range m.TypeNames {
		if ctx.Registry.ContainsType(t) {
			return false, nil
		}
	}
	return true, nil
}

func (e *Evaluator) matchComponents(m *ComponentMatch, ctx *Context, wantPresent bool) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("missing payload")
	}
	if ctx.Registry == nil {
		return false, fmt.Errorf("no registry in context")
	}

	for _, ref := range m.NamesOrTypes {
		found := ctx.Registry.ContainsName(ref) || ctx.Registry.ContainsType(ref)
		if wantPresent && found {
			return true, nil
		}
		if !wantPresent && found {
			return false, nil
		}
	}
	return !wantPresent, nil
}

func (e *Evaluator) matchProfiles(m *ProfileMatch, ctx *Context) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("missing payload")
	}
	if ctx.Environment == nil {
		return false, fmt.Errorf("no environment in context")
	}

	matched := false
	for _, p := range m.Profiles {
		if ctx.Environment.IsProfileActive(p) {
			matched = true
			break
		}
	}
	if m.Negate {
		return !matched, nil
	}
	return matched, nil
}

func (e *Evaluator) matchVersion(m *VersionRange, ctx *Context) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("missing payload")
	}
	if ctx.Runtime == nil {
		return false, fmt.Errorf("no runtime descriptor in context")
	}
	current := ctx.Runtime.CurrentVersion()
	if current == nil {
		return false, fmt.Errorf("runtime descriptor has no version")
	}

	if m.Exact != "" {
		exact, err := version.NewVersion(m.Exact)
		if err != nil {
			return false, fmt.Errorf("invalid exact version %q: %w", m.Exact, err)
		}
		return current.Equal(exact), nil
	}

	if m.Start != "" {
		start, err := version.NewVersion(m.Start)
		if err != nil {
			return false, fmt.Errorf("invalid range start %q: %w", m.Start, err)
		}
		if current.LessThan(start) {
			return false, nil
		}
	}
	if m.End != "" {
		end, err := version.NewVersion(m.End)
		if err != nil {
			return false, fmt.Errorf("invalid range end %q: %w", m.End, err)
		}
		if current.GreaterThanOrEqual(end) {
			return false, nil
		}
	}
	return true, nil
}

func (e *Evaluator) matchResource(m *ResourceMatch, ctx *Context) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("missing payload")
	}
	if ctx.Resources == nil {
		return false, fmt.Errorf("no resource resolver in context")
	}
	return ctx.Resources.Exists(m.Path), nil
}

func (e *Evaluator) matchExpression(m *ExpressionMatch, ctx *Context) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("missing payload")
	}
	if ctx.Expressions == nil {
		return false, fmt.Errorf("no expression evaluator in context")
	}
	return ctx.Expressions.Evaluate(m.Text, ctx.Environment)
}
