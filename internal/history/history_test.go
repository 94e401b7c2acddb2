package history

import (
	"errors"
	"fmt"
	"testing"

	"building-editor/internal/entity"
	"building-editor/internal/logger"
	"building-editor/internal/physics"
	"building-editor/internal/physsync"
	"building-editor/internal/primitives"
	"building-editor/internal/registry"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSelection struct{ n int }

func (s *countingSelection) Reselect() { s.n++ }

func newScene(t *testing.T, n int) *registry.Registry {
	t.Helper()
	br := physsync.New(physics.NewWorld(), logger.Discard())
	reg := registry.New(br)
	br.Bind(reg)
	for i := 0; i < n; i++ {
		g := primitives.Box(rl.NewVector3(1, 1, 1))
		require.NoError(t, reg.Add(&entity.Entity{
			ID:        fmt.Sprintf("e%d", i),
			Geometry:  g,
			Material:  entity.Material{Color: rl.NewColor(10, 20, 30, 255), Opacity: 0.9},
			Transform: entity.At(rl.NewVector3(float32(i), 0.5, 0)),
			Physics:   entity.PhysicsSpec{Shape: entity.ShapeFromBounds(entity.ShapeBox, g.Bounds())},
		}))
	}
	return reg
}

func state(t *testing.T, m *Manager) []*entity.Entity {
	t.Helper()
	s, err := m.Capture()
	require.NoError(t, err)
	return s.Entities
}

func TestUndoEmptyIsNoop(t *testing.T) {
	m := New(newScene(t, 1), nil, 0)
	ok, err := m.Undo()
	assert.False(t, ok)
	assert.NoError(t, err)
	ok, err = m.Redo()
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, DefaultCapacity, m.Capacity())
}

func TestUndoAllEditsRestoresInitialState(t *testing.T) {
	reg := newScene(t, 3)
	sel := &countingSelection{}
	m := New(reg, sel, 0)
	initial := state(t, m)

	const edits = 5
	for i := 0; i < edits; i++ {
		require.NoError(t, m.Snapshot())
		e, _ := reg.Get("e1")
		e.Transform.Position.X += 1
		e.Geometry.Vertices[0].Y -= 0.25
		if i == 2 {
			reg.Remove("e2")
		}
	}
	final := state(t, m)
	require.Equal(t, edits, m.UndoLen())

	for i := 0; i < edits; i++ {
		ok, err := m.Undo()
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, initial, state(t, m))
	assert.Equal(t, edits, sel.n)
	assert.Equal(t, 0, m.UndoLen())
	assert.Equal(t, edits, m.RedoLen())
	assert.Equal(t, reg.Len(), len(reg.Bodies()))

	for i := 0; i < edits; i++ {
		ok, err := m.Redo()
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, final, state(t, m))
}

func TestRestoreBuildsFreshEntities(t *testing.T) {
	reg := newScene(t, 1)
	m := New(reg, nil, 0)
	before, _ := reg.Get("e0")
	bodyBefore, _ := reg.Body("e0")
	require.NoError(t, m.Snapshot())
	_, err := m.Undo()
	require.NoError(t, err)

	after, _ := reg.Get("e0")
	bodyAfter, _ := reg.Body("e0")
	assert.NotSame(t, before, after)
	assert.NotSame(t, bodyBefore, bodyAfter)
}

func TestSnapshotClearsRedo(t *testing.T) {
	reg := newScene(t, 1)
	m := New(reg, nil, 0)
	require.NoError(t, m.Snapshot())
	_, err := m.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, m.RedoLen())
	require.NoError(t, m.Snapshot())
	assert.Equal(t, 0, m.RedoLen())
}

func TestCapacityDropsOldest(t *testing.T) {
	reg := newScene(t, 1)
	m := New(reg, nil, 3)
	e, _ := reg.Get("e0")
	for i := 0; i < 5; i++ {
		e.Transform.Position.X = float32(i)
		require.NoError(t, m.Snapshot())
	}
	assert.Equal(t, 3, m.UndoLen())
	for {
		ok, err := m.Undo()
		require.NoError(t, err)
		if !ok {
			break
		}
	}
	e, _ = reg.Get("e0")
	assert.Equal(t, float32(2), e.Transform.Position.X)
}

type brokenScene struct {
	entities []*entity.Entity
}

func (s *brokenScene) All() []*entity.Entity { return s.entities }
func (s *brokenScene) Replace([]*entity.Entity) error {
	return registry.ErrMalformedGeometry
}

func TestFailedRestoreLeavesStacks(t *testing.T) {
	reg := newScene(t, 1)
	scene := &brokenScene{entities: reg.All()}
	m := New(scene, nil, 0)
	require.NoError(t, m.Snapshot())

	ok, err := m.Undo()
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrRestoreFailed))
	assert.Equal(t, 1, m.UndoLen())
	assert.Equal(t, 0, m.RedoLen())
}
