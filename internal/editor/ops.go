package editor

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/gizmo"
	"building-editor/internal/scene"
)

// ErrNoFaces is returned by a face nudge with no faces selected.
var ErrNoFaces = errors.New("no faces selected")

// CreateShape spawns a primitive at position, lifted to rest on the ground,
// and selects it. The snapshot is taken before the entity exists so undo
// removes it.
func (e *Editor) CreateShape(primType string, position rl.Vector3) (string, error) {
	ent, err := e.Catalog.Spawn(primType, position)
	if err != nil {
		return "", fmt.Errorf("create shape: %w", err)
	}
	ent.Transform.Position.Y = ent.RestHeight()
	e.snapshot()
	if err := e.Registry.Add(ent); err != nil {
		return "", fmt.Errorf("create shape: %w", err)
	}
	e.Selection.SelectEntity(ent.ID)
	e.log.Infof("spawn %s at (%.2f, %.2f, %.2f)", ent.ID, ent.Transform.Position.X, ent.Transform.Position.Y, ent.Transform.Position.Z)
	return ent.ID, nil
}

// DropShape spawns a primitive where the pointer ray through px meets the
// ground.
func (e *Editor) DropShape(primType string, px rl.Vector2) (string, error) {
	p, err := scene.GroundPoint(e.Scene.Camera.RayFromPixel(px))
	if err != nil {
		return "", fmt.Errorf("drop %s: %w", primType, err)
	}
	return e.CreateShape(primType, p)
}

// Select makes id the active entity.
func (e *Editor) Select(id string) error {
	if !e.Selection.SelectEntity(id) {
		return fmt.Errorf("select %q: not found", id)
	}
	return nil
}

// Delete removes the active entity and its body as one undoable step.
func (e *Editor) Delete() error {
	id := e.Selection.Active()
	if id == "" {
		return ErrNoActive
	}
	e.snapshot()
	e.Selection.Forget(id)
	e.Registry.Remove(id)
	e.log.Infof("delete %s", id)
	return nil
}

// Undo restores the previous snapshot. It reports false when there is none.
func (e *Editor) Undo() bool {
	if e.Gizmo.Dragging() {
		return false
	}
	ok, err := e.History.Undo()
	if err != nil {
		e.log.Errorf("undo: %v", err)
		return false
	}
	return ok
}

// Redo re-applies an undone snapshot. It reports false when there is none.
func (e *Editor) Redo() bool {
	if e.Gizmo.Dragging() {
		return false
	}
	ok, err := e.History.Redo()
	if err != nil {
		e.log.Errorf("redo: %v", err)
		return false
	}
	return ok
}

// SetMode switches the gizmo mode.
func (e *Editor) SetMode(m gizmo.Mode) {
	e.Gizmo.SetMode(m)
}

// SetPlane constrains translate drags to two axes, or all axes for AllAxes.
func (e *Editor) SetPlane(a gizmo.Axes) {
	if a == gizmo.AllAxes {
		e.Gizmo.SetAxes(a)
		return
	}
	e.Gizmo.SetPlane(a)
}

// Escape detaches the gizmo and drops the selection along with face and
// drag state, so the next click on the same entity selects it afresh.
func (e *Editor) Escape() {
	e.endPointer()
	e.Gizmo.Escape()
	e.Selection.ClearFaces()
	e.Selection.ClearDrag()
	e.Selection.Clear()
}

// NudgeFaces moves the vertices of every selected face by step along axis in
// the entity's local frame, then commits the bodies. Collision shapes are not
// re-derived.
func (e *Editor) NudgeFaces(axis gizmo.Axes, step float32) error {
	faces := e.Selection.Faces()
	if len(faces) == 0 {
		return ErrNoFaces
	}
	delta := axis.Mask(rl.NewVector3(step, step, step))
	e.snapshot()
	for _, id := range e.Selection.FaceOwners() {
		ent, ok := e.Registry.Get(id)
		if !ok {
			continue
		}
		for _, vi := range ent.Geometry.FaceVertices(faces[id]) {
			ent.Geometry.Vertices[vi] = rl.Vector3Add(ent.Geometry.Vertices[vi], delta)
		}
		if err := e.Bridge.Commit(id); err != nil {
			e.log.Errorf("commit: %v", err)
		}
	}
	e.dims.refresh()
	return nil
}

// NudgeStep is the configured face nudge distance.
func (e *Editor) NudgeStep() float32 {
	if e.prefs.FaceNudgeStep <= 0 {
		return 0.1
	}
	return e.prefs.FaceNudgeStep
}

// SetColor recolors the active entity.
func (e *Editor) SetColor(c rl.Color) error {
	ent, ok := e.Active()
	if !ok {
		return ErrNoActive
	}
	e.snapshot()
	ent.Material.Color = c
	return nil
}

// SetOpacity sets the active entity's opacity, clamped to [0,1].
func (e *Editor) SetOpacity(o float32) error {
	ent, ok := e.Active()
	if !ok {
		return ErrNoActive
	}
	e.snapshot()
	ent.Material.Opacity = max(0, min(1, o))
	return nil
}
