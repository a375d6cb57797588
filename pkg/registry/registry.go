package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vessel-labs/vessel/pkg/condition"
	"github.com/vessel-labs/vessel/pkg/lifecycle"
	"github.com/vessel-labs/vessel/pkg/log"
	"github.com/vessel-labs/vessel/pkg/order"
)

// ErrDuplicateName is returned when a definition's name is already taken.
var ErrDuplicateName = errors.New("registry: duplicate component name")

// Registry stores admitted component definitions by name, preserving
// insertion order for deterministic discovery.
//
// It implements condition.Registry (presence queries), event.Resolver
// (named listener resolution) and lifecycle.Source (participant
// discovery). Thread-safe for concurrent reads; callers serialize
// registration per the container's concurrency contract.
type Registry struct {
	mu        sync.RWMutex
	evaluator *condition.Evaluator
	logger    log.Logger
	defs      map[string]*Definition
	names     []string
}

// New creates an empty registry. A nil evaluator admits every definition
// unconditionally; a nil logger is replaced by a no-op logger.
func New(evaluator *condition.Evaluator, logger log.Logger) *Registry {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Registry{
		evaluator: evaluator,
		logger:    logger,
		defs:      make(map[string]*Definition),
	}
}

// Register runs the definition through condition evaluation against ctx
// and stores it when admitted. It reports whether the definition was
// admitted. A rejected definition leaves no trace in the registry.
//
// Evaluation errors propagate unmasked: a failing condition provider is a
// fatal configuration error for that one candidate, not a recoverable
// mismatch.
func (r *Registry) Register(def *Definition, ctx *condition.Context) (bool, error) {
	if def == nil {
		return false, fmt.Errorf("registry: nil definition")
	}
	if err := def.normalize(); err != nil {
		return false, err
	}

	if r.evaluator != nil && len(def.ConditionSets) > 0 {
		ok, err := r.evaluator.ShouldInclude(def, ctx)
		if err != nil {
			return false, fmt.Errorf("registry: evaluate %q: %w", def.Name, err)
		}
		if !ok {
			r.logger.Debug("definition rejected by conditions",
				log.Component(def.Name))
			return false, nil
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name]; exists {
		return false, fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
	}
	r.defs[def.Name] = def
	r.names = append(r.names, def.Name)

	r.logger.Debug("definition admitted", log.Component(def.Name),
		log.String("type", def.Type))
	return true, nil
}

// ContainsName reports whether a component is registered under name.
func (r *Registry) ContainsName(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[name]
	return ok
}

// ContainsType reports whether any registered definition declares the
// given type.
func (r *Registry) ContainsType(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.defs {
		if d.Type == typeName {
			return true
		}
	}
	return false
}

// Resolve returns the component registered under name.
func (r *Registry) Resolve(name string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	if !ok {
		return nil, false
	}
	return d.Component, true
}

// Definition returns the definition registered under name.
func (r *Registry) Definition(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// Definitions returns all definitions in insertion order.
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.defs[n])
	}
	return out
}

// Participants returns the lifecycle participants among the admitted
// components, ordered by their effective order (the definition's explicit
// marker first, then the component's own order capability), stable in
// insertion order. It implements lifecycle.Source.
func (r *Registry) Participants() []lifecycle.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wrapped := make([]interface{}, 0, len(r.names))
	for _, n := range r.names {
		d := r.defs[n]
		p, ok := d.Participant()
		if !ok {
			continue
		}
		wrapped = append(wrapped, wrapParticipant(d, p))
	}
	order.Sort(wrapped)

	out := make([]lifecycle.Participant, 0, len(wrapped))
	for _, w := range wrapped {
		out = append(out, order.Unwrap(w).(lifecycle.Participant))
	}
	return out
}

func wrapParticipant(d *Definition, p lifecycle.Participant) interface{} {
	if d.Order != nil {
		return order.Explicit{Value: p, Rank: *d.Order, Priority: d.Priority}
	}
	if d.Priority {
		return order.Explicit{Value: p, Rank: order.Of(p), Priority: true}
	}
	return p
}

// Remove deletes the definition registered under name and reports whether
// it existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[name]; !ok {
		return false
	}
	delete(r.defs, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every definition.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = make(map[string]*Definition)
	r.names = nil
}

// Len returns the number of admitted definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
