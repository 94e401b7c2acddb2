package gizmo

import (
	"testing"

	"building-editor/internal/entity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store map[string]*entity.Entity

func (s store) Get(id string) (*entity.Entity, bool) {
	e, ok := s[id]
	return e, ok
}

type camera struct{ enabled []bool }

func (c *camera) SetEnabled(on bool) { c.enabled = append(c.enabled, on) }

type fixedSnap struct {
	at rl.Vector3
	ok bool
}

func (f fixedSnap) FindNearest(rl.Vector3, string) (rl.Vector3, bool) { return f.at, f.ok }

type harness struct {
	g       *Gizmo
	e       *entity.Entity
	cam     *camera
	before  int
	changes []string
}

func newHarness(snapper Snapper, cfg Config) *harness {
	h := &harness{
		e:   &entity.Entity{ID: "box", Transform: entity.At(rl.NewVector3(1, 0.5, 1))},
		cam: &camera{},
	}
	h.g = New(store{"box": h.e}, snapper, Hooks{
		BeforeDrag: func() { h.before++ },
		Change:     func(id string) { h.changes = append(h.changes, id) },
		Camera:     h.cam,
	}, cfg)
	return h
}

func TestAttachDefaults(t *testing.T) {
	h := newHarness(nil, DefaultConfig())
	_, ok := h.g.Attached()
	assert.False(t, ok)
	assert.False(t, h.g.MouseDown(), "detached gizmo cannot drag")

	h.g.SetMode(Scale)
	h.g.SetAxes(AxisY)
	h.g.Attach("box")
	id, ok := h.g.Attached()
	assert.True(t, ok)
	assert.Equal(t, "box", id)
	assert.Equal(t, Translate, h.g.Mode())
	assert.Equal(t, AllAxes, h.g.Axes())
}

func TestSetPlaneForcesTranslate(t *testing.T) {
	h := newHarness(nil, DefaultConfig())
	h.g.Attach("box")
	h.g.SetMode(Rotate)
	h.g.SetPlane(PlaneXZ)
	assert.Equal(t, Translate, h.g.Mode())
	assert.Equal(t, "XZ", h.g.Axes().String())
}

func TestTranslateDragMasksAndSnaps(t *testing.T) {
	h := newHarness(nil, DefaultConfig())
	h.g.Attach("box")
	h.g.SetPlane(PlaneXZ)
	require.True(t, h.g.MouseDown())
	assert.Equal(t, 1, h.before)
	assert.Equal(t, []bool{false}, h.cam.enabled)

	h.g.Drag(rl.NewVector3(0.26, 5, -0.34))
	assert.InDelta(t, 1.3, h.e.Transform.Position.X, 1e-5)
	assert.InDelta(t, 0.5, h.e.Transform.Position.Y, 1e-5)
	assert.InDelta(t, 0.7, h.e.Transform.Position.Z, 1e-5)

	// Deltas are cumulative from the start, not incremental.
	h.g.Drag(rl.NewVector3(0.26, 0, 0))
	assert.InDelta(t, 1.3, h.e.Transform.Position.X, 1e-5)
	assert.InDelta(t, 1, h.e.Transform.Position.Z, 1e-5)

	h.g.MouseUp()
	assert.False(t, h.g.Dragging())
	assert.Equal(t, []bool{false, true}, h.cam.enabled)
	assert.Equal(t, AllAxes, h.g.Axes(), "mask resets on drag end")
	assert.Equal(t, []string{"box", "box", "box"}, h.changes)
}

func TestRotateSnapsTo15Degrees(t *testing.T) {
	h := newHarness(nil, DefaultConfig())
	h.g.Attach("box")
	h.g.SetMode(Rotate)
	h.g.MouseDown()
	h.g.Drag(rl.NewVector3(0, 0.3, 0))
	assert.InDelta(t, 15*rl.Deg2rad, h.e.Transform.Rotation.Y, 1e-5)
}

func TestScaleHasFloor(t *testing.T) {
	h := newHarness(nil, DefaultConfig())
	h.g.Attach("box")
	h.g.SetMode(Scale)
	h.g.MouseDown()
	h.g.Drag(rl.NewVector3(0.44, -3, 0))
	assert.InDelta(t, 1.4, h.e.Transform.Scale.X, 1e-5)
	assert.InDelta(t, minScale, h.e.Transform.Scale.Y, 1e-6)
	assert.InDelta(t, 1, h.e.Transform.Scale.Z, 1e-6)
}

func TestSnappingOff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Snapping = false
	h := newHarness(fixedSnap{at: rl.NewVector3(9, 9, 9), ok: true}, cfg)
	h.g.Attach("box")
	h.g.MouseDown()
	h.g.Drag(rl.NewVector3(0.26, 0, 0))
	assert.InDelta(t, 1.26, h.e.Transform.Position.X, 1e-5)
}

func TestVertexSnapOnEnabledAxes(t *testing.T) {
	h := newHarness(fixedSnap{at: rl.NewVector3(2, 3, 4), ok: true}, DefaultConfig())
	h.g.Attach("box")
	h.g.SetPlane(PlaneXZ)
	h.g.MouseDown()
	h.g.Drag(rl.NewVector3(1, 0, 1))
	assert.Equal(t, rl.NewVector3(2, 0.5, 4), h.e.Transform.Position)
}

func TestEscapeDuringDragCommitsThenDetaches(t *testing.T) {
	h := newHarness(nil, DefaultConfig())
	h.g.Attach("box")
	h.g.MouseDown()
	h.g.Drag(rl.NewVector3(1, 0, 0))
	h.g.Escape()
	_, ok := h.g.Attached()
	assert.False(t, ok)
	assert.False(t, h.g.Dragging())
	assert.Equal(t, []bool{false, true}, h.cam.enabled)
	assert.Len(t, h.changes, 2)
	assert.InDelta(t, 2, h.e.Transform.Position.X, 1e-5)
}

func TestParse(t *testing.T) {
	m, ok := ParseMode("r")
	assert.True(t, ok)
	assert.Equal(t, Rotate, m)
	_, ok = ParseMode("shear")
	assert.False(t, ok)

	a, ok := ParsePlane("yz")
	assert.True(t, ok)
	assert.Equal(t, PlaneYZ, a)
}

func TestDragPlaneIntersect(t *testing.T) {
	p := DragPlane(PlaneXZ, rl.NewVector3(0, 2, 0), rl.NewVector3(0, -1, 0))
	hit, ok := p.Intersect(rl.NewRay(rl.NewVector3(3, 10, -1), rl.NewVector3(0, -1, 0)))
	require.True(t, ok)
	assert.Equal(t, rl.NewVector3(3, 2, -1), hit)

	_, ok = p.Intersect(rl.NewRay(rl.NewVector3(3, 10, -1), rl.NewVector3(1, 0, 0)))
	assert.False(t, ok)

	single := DragPlane(AxisY, rl.Vector3Zero(), rl.NewVector3(0, -1, -1))
	assert.InDelta(t, 0, single.Normal.Y, 1e-6)
}
