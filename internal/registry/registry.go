// Package registry owns the scene's entities and their physics bodies as one
// ordered list of pairs, so the visual and physical views can never drift out
// of alignment.
package registry

import (
	"errors"
	"fmt"

	"building-editor/internal/entity"
	"building-editor/internal/physics"
)

var (
	// ErrMalformedGeometry is returned for entities whose geometry cannot be drawn.
	ErrMalformedGeometry = errors.New("malformed geometry")
	// ErrDuplicateID is returned when an id is already registered.
	ErrDuplicateID = errors.New("duplicate entity id")
)

// BodyHost creates and destroys the physics body paired with an entity.
type BodyHost interface {
	Attach(e *entity.Entity) *physics.Body
	Detach(b *physics.Body)
}

type pair struct {
	visual *entity.Entity
	body   *physics.Body
}

// Registry is the ordered arena of (visual, body) pairs keyed by id.
type Registry struct {
	host  BodyHost
	pairs []pair
	index map[string]int
}

// New returns an empty registry using host for body lifecycle. A nil host
// registers entities without bodies.
func New(host BodyHost) *Registry {
	return &Registry{host: host, index: make(map[string]int)}
}

func validate(e *entity.Entity) error {
	if e == nil {
		return fmt.Errorf("nil entity: %w", ErrMalformedGeometry)
	}
	if err := e.Geometry.Validate(); err != nil {
		return fmt.Errorf("entity %q: %v: %w", e.ID, err, ErrMalformedGeometry)
	}
	return nil
}

// Add validates e, appends it and attaches its body.
func (r *Registry) Add(e *entity.Entity) error {
	if err := validate(e); err != nil {
		return err
	}
	if _, ok := r.index[e.ID]; ok {
		return fmt.Errorf("entity %q: %w", e.ID, ErrDuplicateID)
	}
	r.push(e)
	return nil
}

func (r *Registry) push(e *entity.Entity) {
	var b *physics.Body
	if r.host != nil {
		b = r.host.Attach(e)
	}
	r.index[e.ID] = len(r.pairs)
	r.pairs = append(r.pairs, pair{visual: e, body: b})
}

// Remove deletes the entity and its body. It reports whether id was present.
func (r *Registry) Remove(id string) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	if r.host != nil && r.pairs[i].body != nil {
		r.host.Detach(r.pairs[i].body)
	}
	r.pairs = append(r.pairs[:i], r.pairs[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.pairs); j++ {
		r.index[r.pairs[j].visual.ID] = j
	}
	return true
}

// Get returns the entity with the given id.
func (r *Registry) Get(id string) (*entity.Entity, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.pairs[i].visual, true
}

// Body returns the body paired with id.
func (r *Registry) Body(id string) (*physics.Body, bool) {
	i, ok := r.index[id]
	if !ok || r.pairs[i].body == nil {
		return nil, false
	}
	return r.pairs[i].body, true
}

// Len returns the number of pairs.
func (r *Registry) Len() int {
	return len(r.pairs)
}

// All returns the entities in registry order.
func (r *Registry) All() []*entity.Entity {
	return r.Visuals()
}

// Visuals returns the visual side of every pair, index-aligned with Bodies.
func (r *Registry) Visuals() []*entity.Entity {
	out := make([]*entity.Entity, len(r.pairs))
	for i, p := range r.pairs {
		out[i] = p.visual
	}
	return out
}

// Bodies returns the physics side of every pair, index-aligned with Visuals.
func (r *Registry) Bodies() []*physics.Body {
	out := make([]*physics.Body, len(r.pairs))
	for i, p := range r.pairs {
		out[i] = p.body
	}
	return out
}

// Each calls fn for every pair in order until fn returns false.
func (r *Registry) Each(fn func(e *entity.Entity, b *physics.Body) bool) {
	for _, p := range r.pairs {
		if !fn(p.visual, p.body) {
			return
		}
	}
}

// Replace swaps the whole content for entities. Every entity is validated and
// ids are checked for duplicates before anything changes.
func (r *Registry) Replace(entities []*entity.Entity) error {
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		if err := validate(e); err != nil {
			return err
		}
		if seen[e.ID] {
			return fmt.Errorf("entity %q: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = true
	}
	r.Clear()
	for _, e := range entities {
		r.push(e)
	}
	return nil
}

// Clear removes every pair and detaches every body.
func (r *Registry) Clear() {
	if r.host != nil {
		for _, p := range r.pairs {
			if p.body != nil {
				r.host.Detach(p.body)
			}
		}
	}
	r.pairs = nil
	r.index = make(map[string]int)
}

// IngestAll adds each entity, skipping those that fail. It returns one error
// per skipped entity.
func (r *Registry) IngestAll(entities []*entity.Entity) []error {
	var warnings []error
	for _, e := range entities {
		if err := r.Add(e); err != nil {
			warnings = append(warnings, err)
		}
	}
	return warnings
}
