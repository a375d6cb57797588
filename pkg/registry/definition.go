package registry

import (
	"fmt"

	"github.com/vessel-labs/vessel/pkg/condition"
	"github.com/vessel-labs/vessel/pkg/event"
	"github.com/vessel-labs/vessel/pkg/lifecycle"
)

// Definition is a candidate component registration: the component
// instance plus the declarative metadata the container acts on. Condition
// sets are attached before registration and never mutated afterwards.
type Definition struct {
	// Name uniquely identifies the component in the registry.
	Name string

	// Type is the declared component type used by type-presence
	// conditions. Derived from the component's Go type when empty.
	Type string

	// Component is the managed instance. Instantiation is outside the
	// container's scope; definitions carry already-built components.
	Component interface{}

	// ConditionSets gate admission. A definition with none is
	// unconditionally admitted.
	ConditionSets []condition.Set

	// Order is an optional explicit order marker. It takes precedence
	// over any order capability the component implements.
	Order *int

	// Priority places the component in the priority tier for tie-breaks
	// among equal effective orders.
	Priority bool

	// Capabilities recorded at admission so discovery is an explicit
	// registry query rather than a structural scan.
	participant lifecycle.Participant
	listener    event.Listener
}

// Conditions implements condition.Conditional.
func (d *Definition) Conditions() []condition.Set {
	return d.ConditionSets
}

// Participant returns the component's lifecycle capability, recorded at
// admission.
func (d *Definition) Participant() (lifecycle.Participant, bool) {
	return d.participant, d.participant != nil
}

// Listener returns the component's event listener capability, recorded at
// admission.
func (d *Definition) Listener() (event.Listener, bool) {
	return d.listener, d.listener != nil
}

// normalize fills derived fields and validates the definition.
func (d *Definition) normalize() error {
	if d.Name == "" {
		return fmt.Errorf("registry: definition requires a name")
	}
	if d.Component == nil {
		return fmt.Errorf("registry: definition %q requires a component", d.Name)
	}
	if d.Type == "" {
		d.Type = fmt.Sprintf("%T", d.Component)
	}
	if p, ok := d.Component.(lifecycle.Participant); ok {
		d.participant = p
	}
	if l, ok := d.Component.(event.Listener); ok {
		d.listener = l
	}
	return nil
}
