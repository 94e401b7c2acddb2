// Package gizmo is the transform gizmo state machine: attachment, mode, axis
// constraints, the drag sub-state and the snapping policy.
package gizmo

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
)

// Mode is the kind of transform a drag applies.
type Mode int

const (
	Translate Mode = iota
	Rotate
	Scale
)

func (m Mode) String() string {
	switch m {
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	}
	return "translate"
}

// ParseMode maps "translate", "rotate" and "scale" (or g, r, s) to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "translate", "g":
		return Translate, true
	case "rotate", "r":
		return Rotate, true
	case "scale", "s":
		return Scale, true
	}
	return Translate, false
}

// Axes is a bit mask of the axes a drag may change.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ

	AllAxes = AxisX | AxisY | AxisZ
	PlaneXY = AxisX | AxisY
	PlaneYZ = AxisY | AxisZ
	PlaneXZ = AxisX | AxisZ
)

// Has reports whether every axis in o is enabled.
func (a Axes) Has(o Axes) bool {
	return a&o == o
}

// Mask zeroes the components of v whose axis is disabled.
func (a Axes) Mask(v rl.Vector3) rl.Vector3 {
	if !a.Has(AxisX) {
		v.X = 0
	}
	if !a.Has(AxisY) {
		v.Y = 0
	}
	if !a.Has(AxisZ) {
		v.Z = 0
	}
	return v
}

func (a Axes) String() string {
	s := ""
	for _, ax := range []struct {
		bit  Axes
		name string
	}{{AxisX, "X"}, {AxisY, "Y"}, {AxisZ, "Z"}} {
		if a.Has(ax.bit) {
			s += ax.name
		}
	}
	return s
}

// ParsePlane maps "xy", "yz", "xz" or "xyz" to a mask.
func ParsePlane(s string) (Axes, bool) {
	switch s {
	case "xy", "XY":
		return PlaneXY, true
	case "yz", "YZ":
		return PlaneYZ, true
	case "xz", "XZ":
		return PlaneXZ, true
	case "xyz", "XYZ", "all":
		return AllAxes, true
	}
	return 0, false
}

// Config is the snapping policy. Steps of 0 disable snapping for that mode.
type Config struct {
	TranslationSnap float32
	RotationSnap    float32 // radians
	ScaleSnap       float32
	Snapping        bool
	VertexSnap      bool
}

// DefaultConfig snaps to 0.1 m, 15° and 0.1 with vertex snapping on.
func DefaultConfig() Config {
	return Config{
		TranslationSnap: 0.1,
		RotationSnap:    15 * rl.Deg2rad,
		ScaleSnap:       0.1,
		Snapping:        true,
		VertexSnap:      true,
	}
}

// minScale keeps scale drags from collapsing or mirroring an entity.
const minScale = 0.01

// Store looks entities up by id.
type Store interface {
	Get(id string) (*entity.Entity, bool)
}

// Snapper finds the nearest vertex of entities other than excludeID.
type Snapper interface {
	FindNearest(p rl.Vector3, excludeID string) (rl.Vector3, bool)
}

// CameraController is disabled for the duration of a drag.
type CameraController interface {
	SetEnabled(on bool)
}

// Hooks connect the gizmo to the rest of the editor. Any may be nil.
type Hooks struct {
	// BeforeDrag runs on mouse down before anything changes (history snapshot).
	BeforeDrag func()
	// Change runs after every transform change and on mouse up (dimensions
	// readout and physics commit).
	Change func(id string)
	Camera CameraController
}

// Gizmo is Detached or Attached{mode, axes}, with a dragging sub-state.
type Gizmo struct {
	store   Store
	snapper Snapper
	hooks   Hooks
	Config  Config

	id       string
	mode     Mode
	axes     Axes
	dragging bool
	start    entity.Transform
}

// New returns a detached gizmo.
func New(store Store, snapper Snapper, hooks Hooks, cfg Config) *Gizmo {
	return &Gizmo{store: store, snapper: snapper, hooks: hooks, Config: cfg, axes: AllAxes}
}

// Attach binds the gizmo to id in translate mode with all axes.
func (g *Gizmo) Attach(id string) {
	if g.dragging {
		g.MouseUp()
	}
	g.id = id
	g.mode = Translate
	g.axes = AllAxes
}

// Detach unbinds the gizmo, ending a drag first.
func (g *Gizmo) Detach() {
	if g.dragging {
		g.MouseUp()
	}
	g.id = ""
	g.axes = AllAxes
}

// Attached returns the bound id.
func (g *Gizmo) Attached() (string, bool) {
	return g.id, g.id != ""
}

// Mode returns the current mode.
func (g *Gizmo) Mode() Mode { return g.mode }

// Axes returns the current axis mask.
func (g *Gizmo) Axes() Axes { return g.axes }

// Dragging reports whether a drag is in progress.
func (g *Gizmo) Dragging() bool { return g.dragging }

// SetMode switches between translate, rotate and scale, keeping the attachment.
func (g *Gizmo) SetMode(m Mode) {
	g.mode = m
}

// SetPlane switches to translate constrained to two axes.
func (g *Gizmo) SetPlane(plane Axes) {
	g.mode = Translate
	g.axes = plane
}

// SetAxes sets the axis mask. An empty mask means all axes.
func (g *Gizmo) SetAxes(a Axes) {
	if a&AllAxes == 0 {
		a = AllAxes
	}
	g.axes = a & AllAxes
}

// MouseDown starts a drag on the attached entity: it runs BeforeDrag, disables
// the camera controller and records the start transform.
func (g *Gizmo) MouseDown() bool {
	if g.id == "" || g.dragging {
		return false
	}
	e, ok := g.store.Get(g.id)
	if !ok {
		return false
	}
	if g.hooks.BeforeDrag != nil {
		g.hooks.BeforeDrag()
	}
	if g.hooks.Camera != nil {
		g.hooks.Camera.SetEnabled(false)
	}
	g.start = e.Transform
	g.dragging = true
	return true
}

// Drag applies delta, the cumulative raw change since MouseDown, to the
// attached entity. Translate deltas are in meters, rotate deltas in radians
// per axis and scale deltas are added to the start scale.
func (g *Gizmo) Drag(delta rl.Vector3) {
	if !g.dragging {
		return
	}
	e, ok := g.store.Get(g.id)
	if !ok {
		return
	}
	d := g.axes.Mask(delta)
	switch g.mode {
	case Translate:
		d = g.snap(d, g.Config.TranslationSnap)
		pos := rl.Vector3Add(g.start.Position, d)
		if g.Config.Snapping && g.Config.VertexSnap && g.snapper != nil {
			if v, ok := g.snapper.FindNearest(pos, g.id); ok {
				pos = rl.Vector3Add(g.axes.Mask(v), maskOut(pos, g.axes))
			}
		}
		e.Transform.Position = pos
	case Rotate:
		d = g.snap(d, g.Config.RotationSnap)
		e.Transform.Rotation = rl.Vector3Add(g.start.Rotation, d)
	case Scale:
		d = g.snap(d, g.Config.ScaleSnap)
		s := rl.Vector3Add(g.start.Scale, d)
		e.Transform.Scale = rl.NewVector3(max(s.X, minScale), max(s.Y, minScale), max(s.Z, minScale))
	}
	if g.hooks.Change != nil {
		g.hooks.Change(g.id)
	}
}

// MouseUp ends a drag: it re-enables the camera, runs the final Change and
// resets the axis mask to all axes.
func (g *Gizmo) MouseUp() {
	if !g.dragging {
		return
	}
	g.dragging = false
	if g.hooks.Camera != nil {
		g.hooks.Camera.SetEnabled(true)
	}
	if g.hooks.Change != nil {
		g.hooks.Change(g.id)
	}
	g.axes = AllAxes
}

// Escape forces Detached from any state.
func (g *Gizmo) Escape() {
	g.Detach()
}

func (g *Gizmo) snap(v rl.Vector3, step float32) rl.Vector3 {
	if !g.Config.Snapping || step <= 0 {
		return v
	}
	return rl.NewVector3(roundTo(v.X, step), roundTo(v.Y, step), roundTo(v.Z, step))
}

func roundTo(v, step float32) float32 {
	return math32.Round(v/step) * step
}

// maskOut keeps only the components of v whose axis is disabled.
func maskOut(v rl.Vector3, a Axes) rl.Vector3 {
	return rl.Vector3Subtract(v, a.Mask(v))
}
