// Package history keeps bounded undo and redo stacks of whole-scene snapshots.
package history

import (
	"errors"
	"fmt"

	"building-editor/internal/entity"
)

// DefaultCapacity is the number of undo steps kept before the oldest is dropped.
const DefaultCapacity = 50

// ErrRestoreFailed is returned when a snapshot could not be applied. The scene
// and both stacks are left as they were.
var ErrRestoreFailed = errors.New("restore failed")

// Scene is the entity store snapshots are taken from and restored into.
type Scene interface {
	All() []*entity.Entity
	Replace(entities []*entity.Entity) error
}

// Selection re-resolves the active entity after the scene was replaced.
type Selection interface {
	Reselect()
}

// Snapshot is a deep copy of every entity's persistent state.
type Snapshot struct {
	Entities []*entity.Entity
}

// Manager owns the undo and redo stacks.
type Manager struct {
	scene    Scene
	sel      Selection
	capacity int
	undo     []Snapshot
	redo     []Snapshot
}

// New returns a manager over scene. sel may be nil. capacity <= 0 uses DefaultCapacity.
func New(scene Scene, sel Selection, capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{scene: scene, sel: sel, capacity: capacity}
}

// Capture deep-copies the current scene.
func (m *Manager) Capture() (Snapshot, error) {
	all := m.scene.All()
	s := Snapshot{Entities: make([]*entity.Entity, len(all))}
	for i, e := range all {
		c, err := e.Clone()
		if err != nil {
			return Snapshot{}, fmt.Errorf("snapshot %s: %w", e.ID, err)
		}
		s.Entities[i] = c
	}
	return s, nil
}

// Snapshot pushes the current scene onto the undo stack and clears redo.
func (m *Manager) Snapshot() error {
	s, err := m.Capture()
	if err != nil {
		return err
	}
	m.undo = pushBounded(m.undo, s, m.capacity)
	m.redo = nil
	return nil
}

// Push records an earlier Capture as the next undo step and clears redo. It
// lets a caller snapshot only once a mutation is known to succeed.
func (m *Manager) Push(s Snapshot) {
	m.undo = pushBounded(m.undo, s, m.capacity)
	m.redo = nil
}

// Undo restores the most recent snapshot. It reports false when there is
// nothing to undo.
func (m *Manager) Undo() (bool, error) {
	if len(m.undo) == 0 {
		return false, nil
	}
	current, err := m.Capture()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRestoreFailed, err)
	}
	if err := m.Restore(m.undo[len(m.undo)-1]); err != nil {
		return false, err
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = pushBounded(m.redo, current, m.capacity)
	return true, nil
}

// Redo re-applies the most recently undone snapshot. It reports false when
// there is nothing to redo.
func (m *Manager) Redo() (bool, error) {
	if len(m.redo) == 0 {
		return false, nil
	}
	current, err := m.Capture()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRestoreFailed, err)
	}
	if err := m.Restore(m.redo[len(m.redo)-1]); err != nil {
		return false, err
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = pushBounded(m.undo, current, m.capacity)
	return true, nil
}

// Restore replaces the scene with fresh copies of the snapshot's entities,
// recreating their bodies, then re-resolves the selection.
func (m *Manager) Restore(s Snapshot) error {
	fresh := make([]*entity.Entity, len(s.Entities))
	for i, e := range s.Entities {
		c, err := e.Clone()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRestoreFailed, e.ID, err)
		}
		fresh[i] = c
	}
	if err := m.scene.Replace(fresh); err != nil {
		return fmt.Errorf("%w: %v", ErrRestoreFailed, err)
	}
	if m.sel != nil {
		m.sel.Reselect()
	}
	return nil
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.undo, m.redo = nil, nil
}

// UndoLen returns the number of undo steps.
func (m *Manager) UndoLen() int { return len(m.undo) }

// RedoLen returns the number of redo steps.
func (m *Manager) RedoLen() int { return len(m.redo) }

// Capacity returns the undo bound.
func (m *Manager) Capacity() int { return m.capacity }

func pushBounded(stack []Snapshot, s Snapshot, capacity int) []Snapshot {
	stack = append(stack, s)
	if over := len(stack) - capacity; over > 0 {
		stack = append(stack[:0:0], stack[over:]...)
	}
	return stack
}
