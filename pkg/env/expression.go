package env

import (
	"fmt"
	"strings"

	"github.com/vessel-labs/vessel/pkg/condition"
)

// PlaceholderEvaluator evaluates expression condition rules against the
// environment's property resolution. It expands ${key} and ${key:default}
// placeholders, then interprets the result:
//
//   - "a == b" / "a != b" compare the trimmed operands
//   - a leading "!" negates the remaining expression
//   - anything else is truthy when it reads true/1/yes/on (case-insensitive)
//
// It implements condition.ExpressionEvaluator. Richer expression languages
// can be plugged in by providing another implementation to the runtime.
type PlaceholderEvaluator struct{}

// NewPlaceholderEvaluator creates the default expression evaluator.
func NewPlaceholderEvaluator() *PlaceholderEvaluator {
	return &PlaceholderEvaluator{}
}

// Evaluate expands placeholders in text and reports whether the resulting
// expression is truthy. An unresolvable placeholder without a default and
// an unterminated placeholder are errors.
func (p *PlaceholderEvaluator) Evaluate(text string, environment condition.Environment) (bool, error) {
	expanded, err := p.expand(text, environment)
	if err != nil {
		return false, err
	}

	expr := strings.TrimSpace(expanded)
	negate := false
	for strings.HasPrefix(expr, "!") {
		negate = !negate
		expr = strings.TrimSpace(expr[1:])
	}

	var result bool
	switch {
	case strings.Contains(expr, "!="):
		lhs, rhs, _ := strings.Cut(expr, "!=")
		result = strings.TrimSpace(lhs) != strings.TrimSpace(rhs)
	case strings.Contains(expr, "=="):
		lhs, rhs, _ := strings.Cut(expr, "==")
		result = strings.TrimSpace(lhs) == strings.TrimSpace(rhs)
	default:
		result = truthy(expr)
	}
	if negate {
		return !result, nil
	}
	return result, nil
}

func (p *PlaceholderEvaluator) expand(text string, environment condition.Environment) (string, error) {
	var b strings.Builder
	for {
		start := strings.Index(text, "${")
		if start < 0 {
			b.WriteString(text)
			return b.String(), nil
		}
		b.WriteString(text[:start])
		rest := text[start+2:]

		end := strings.Index(rest, "}")
		if end < 0 {
			return "", fmt.Errorf("env: unterminated placeholder in %q", text)
		}
		key := rest[:end]
		text = rest[end+1:]

		def := ""
		hasDefault := false
		if k, d, ok := strings.Cut(key, ":"); ok {
			key, def, hasDefault = k, d, true
		}
		if environment == nil {
			return "", fmt.Errorf("env: no environment for placeholder %q", key)
		}
		value, present := environment.Property(key)
		switch {
		case present:
			b.WriteString(value)
		case hasDefault:
			b.WriteString(def)
		default:
			return "", fmt.Errorf("env: unresolvable placeholder %q", key)
		}
	}
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
