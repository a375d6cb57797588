package condition

// Kind discriminates the rule variants. Rules are a tagged union: exactly
// one payload field on Rule is set, selected by Kind.
type Kind int

const (
	// KindPropertyMatch matches environment properties against an
	// expected value.
	KindPropertyMatch Kind = iota

	// KindTypePresent requires at least one listed type to be registered.
	KindTypePresent

	// KindTypeAbsent requires none of the listed types to be registered.
	KindTypeAbsent

	// KindComponentPresent requires a component registered under any of
	// the listed names or types.
	KindComponentPresent

	// KindComponentAbsent requires none of the listed names or types to
	// be registered.
	KindComponentAbsent

	// KindProfileActive requires at least one listed profile to be
	// active (inverted by Negate).
	KindProfileActive

	// KindVersionInRange requires the runtime version to equal an exact
	// value or fall within [Start, End).
	KindVersionInRange

	// KindResourceExists requires the named resource to be resolvable.
	KindResourceExists

	// KindExpression requires the expression to evaluate truthy.
	KindExpression
)

// String returns a human-readable name for the rule kind.
func (k Kind) String() string {
	switch k {
	case KindPropertyMatch:
		return "property-match"
	case KindTypePresent:
		return "type-present"
	case KindTypeAbsent:
		return "type-absent"
	case KindComponentPresent:
		return "component-present"
	case KindComponentAbsent:
		return "component-absent"
	case KindProfileActive:
		return "profile-active"
	case KindVersionInRange:
		return "version-in-range"
	case KindResourceExists:
		return "resource-exists"
	case KindExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// PropertyMatch is the payload of a KindPropertyMatch rule. The full key
// for each name is Prefix + "." + name (or the bare name when Prefix is
// empty). When every listed key is absent the rule yields MatchIfMissing;
// otherwise every present key's value must equal ExpectedValue.
type PropertyMatch struct {
	Prefix         string
	Names          []string
	ExpectedValue  string
	MatchIfMissing bool
}

// TypeMatch is the payload of type presence/absence rules.
type TypeMatch struct {
	TypeNames []string
}

// ComponentMatch is the payload of component presence/absence rules. Each
// entry is matched against registered names first, then declared types.
type ComponentMatch struct {
	NamesOrTypes []string
}

// ProfileMatch is the payload of a KindProfileActive rule. The rule
// succeeds when at least one listed profile is active; Negate inverts the
// final result.
type ProfileMatch struct {
	Profiles []string
	Negate   bool
}

// VersionRange is the payload of a KindVersionInRange rule. Exact wins
// over the range when set. An empty End leaves the range unbounded above.
// Versions are parsed at evaluation time; a malformed version is an
// evaluation error, not a mismatch.
type VersionRange struct {
	Exact string
	Start string
	End   string
}

// ResourceMatch is the payload of a KindResourceExists rule.
type ResourceMatch struct {
	Path string
}

// ExpressionMatch is the payload of a KindExpression rule.
type ExpressionMatch struct {
	Text string
}

// Rule is a single evaluable predicate attached to a candidate component
// definition. Rules are pure: evaluating one never mutates the context or
// registry.
type Rule struct {
	Kind       Kind
	Property   *PropertyMatch
	Type       *TypeMatch
	Component  *ComponentMatch
	Profile    *ProfileMatch
	Version    *VersionRange
	Resource   *ResourceMatch
	Expression *ExpressionMatch
}

// Set is an ordered sequence of rules attached to one candidate
// definition. Evaluation is logical AND in declaration order,
// short-circuiting on the first false rule.
type Set []Rule

// OnProperty builds a property-match rule over prefix-composed keys.
func OnProperty(prefix string, names []string, expected string, matchIfMissing bool) Rule {
	return Rule{Kind: KindPropertyMatch, Property: &PropertyMatch{
		Prefix:         prefix,
		Names:          names,
		ExpectedValue:  expected,
		MatchIfMissing: matchIfMissing,
	}}
}

// OnTypePresent builds a rule requiring at least one of the types.
func OnTypePresent(typeNames ...string) Rule {
	return Rule{Kind: KindTypePresent, Type: &TypeMatch{TypeNames: typeNames}}
}

// OnTypeAbsent builds a rule requiring none of the types.
func OnTypeAbsent(typeNames ...string) Rule {
	return Rule{Kind: KindTypeAbsent, Type: &TypeMatch{TypeNames: typeNames}}
}

// OnComponent builds a rule requiring a registered component under any of
// the listed names or types.
func OnComponent(namesOrTypes ...string) Rule {
	return Rule{Kind: KindComponentPresent, Component: &ComponentMatch{NamesOrTypes: namesOrTypes}}
}

// OnMissingComponent builds a rule requiring none of the listed names or
// types to be registered.
func OnMissingComponent(namesOrTypes ...string) Rule {
	return Rule{Kind: KindComponentAbsent, Component: &ComponentMatch{NamesOrTypes: namesOrTypes}}
}

// OnProfile builds a rule requiring at least one active profile.
func OnProfile(profiles ...string) Rule {
	return Rule{Kind: KindProfileActive, Profile: &ProfileMatch{Profiles: profiles}}
}

// NotOnProfile builds the logical complement of OnProfile for the same
// profile list.
func NotOnProfile(profiles ...string) Rule {
	return Rule{Kind: KindProfileActive, Profile: &ProfileMatch{Profiles: profiles, Negate: true}}
}

// OnVersion builds a rule requiring the runtime version to equal exact.
func OnVersion(exact string) Rule {
	return Rule{Kind: KindVersionInRange, Version: &VersionRange{Exact: exact}}
}

// OnVersionRange builds a rule requiring the runtime version to fall in
// [start, end). An empty end leaves the range unbounded above.
func OnVersionRange(start, end string) Rule {
	return Rule{Kind: KindVersionInRange, Version: &VersionRange{Start: start, End: end}}
}

// OnResource builds a rule requiring the resource at path to exist.
func OnResource(path string) Rule {
	return Rule{Kind: KindResourceExists, Resource: &ResourceMatch{Path: path}}
}

// OnExpression builds a rule requiring the expression to evaluate truthy.
func OnExpression(text string) Rule {
	return Rule{Kind: KindExpression, Expression: &ExpressionMatch{Text: text}}
}
