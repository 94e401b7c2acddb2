package editor

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/boxselect"
	"building-editor/internal/gizmo"
	"building-editor/internal/scene"
	"building-editor/internal/selection"
)

const (
	// clickSlop is the largest pointer travel, in pixels, that still counts
	// as a click rather than a box-select.
	clickSlop = 4
	// rotateSpeed and scaleSpeed convert pointer travel in pixels to radians
	// and scale units.
	rotateSpeed = 0.01
	scaleSpeed  = 0.01
)

type pointerMode int

const (
	pointerIdle pointerMode = iota
	pointerGizmo
	pointerGround
	pointerBox
)

type pointer struct {
	mode    pointerMode
	start   rl.Vector2
	current rl.Vector2
	plane   gizmo.Plane
	anchor  rl.Vector3
	planeOK bool
}

// PointerDown handles a left press at px. A press on a box-selected entity
// starts a ground drag, a press on the active entity starts a gizmo drag, a
// press on any other entity selects it (or one of its faces with ctrl) and a
// press on empty space starts a box-select.
func (e *Editor) PointerDown(px rl.Vector2, ctrl bool) {
	if e.pointer.mode != pointerIdle {
		return
	}
	e.pointer = pointer{start: px, current: px}
	ray := e.Scene.Camera.RayFromPixel(px)
	hit, ok := e.Selection.Pick(ray)
	switch {
	case !ok:
		e.pointer.mode = pointerBox
	case e.Selection.Draggable(hit.ID) && !ctrl:
		e.beginGroundDrag(hit.ID, ray)
	case hit.ID == e.Selection.Active() && !ctrl:
		e.beginGizmoDrag(hit.ID, ray)
	case ctrl:
		e.Selection.SelectFace(hit.ID, hit.Face, true)
	default:
		e.Selection.ClearFaces()
		e.Selection.ClearDrag()
		e.Selection.SelectEntity(hit.ID)
	}
}

func (e *Editor) beginGroundDrag(id string, ray rl.Ray) {
	gp, err := scene.GroundPoint(ray)
	if err != nil {
		return
	}
	e.snapshot()
	e.Selection.SelectEntity(id)
	if e.Selection.BeginDrag(id, gp) {
		e.pointer.mode = pointerGround
	}
}

func (e *Editor) beginGizmoDrag(id string, ray rl.Ray) {
	ent, ok := e.Registry.Get(id)
	if !ok || !e.Gizmo.MouseDown() {
		return
	}
	cam := e.Scene.Camera
	view := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	e.pointer.mode = pointerGizmo
	e.pointer.plane = gizmo.DragPlane(e.Gizmo.Axes(), ent.Transform.Position, view)
	e.pointer.anchor, e.pointer.planeOK = e.pointer.plane.Intersect(ray)
}

// PointerMove continues the interaction started by PointerDown.
func (e *Editor) PointerMove(px rl.Vector2) {
	e.pointer.current = px
	switch e.pointer.mode {
	case pointerGizmo:
		e.Gizmo.Drag(e.gizmoDelta(px))
	case pointerGround:
		e.groundDrag(px)
	}
}

func (e *Editor) gizmoDelta(px rl.Vector2) rl.Vector3 {
	dx := px.X - e.pointer.start.X
	dy := px.Y - e.pointer.start.Y
	switch e.Gizmo.Mode() {
	case gizmo.Rotate:
		if e.Gizmo.Axes() == gizmo.AxisZ {
			return rl.NewVector3(0, 0, dx*rotateSpeed)
		}
		return rl.NewVector3(dy*rotateSpeed, dx*rotateSpeed, 0)
	case gizmo.Scale:
		s := -dy * scaleSpeed
		return rl.NewVector3(s, s, s)
	}
	if !e.pointer.planeOK {
		return rl.Vector3Zero()
	}
	hit, ok := e.pointer.plane.Intersect(e.Scene.Camera.RayFromPixel(px))
	if !ok {
		return rl.Vector3Zero()
	}
	return rl.Vector3Subtract(hit, e.pointer.anchor)
}

func (e *Editor) groundDrag(px rl.Vector2) {
	st := e.Selection.DragState()
	ent, ok := e.Registry.Get(st.ID)
	if !ok {
		return
	}
	gp, err := scene.GroundPoint(e.Scene.Camera.RayFromPixel(px))
	if err != nil {
		return
	}
	ent.Transform.Position = rl.NewVector3(gp.X, ent.RestHeight(), gp.Z)
	e.objectChanged(st.ID)
}

// PointerUp finishes the interaction. A box-select that did not travel past
// clickSlop is a click on empty space and clears the selection.
func (e *Editor) PointerUp(px rl.Vector2) {
	e.pointer.current = px
	if e.pointer.mode == pointerBox {
		r := e.boxRect()
		if r.X1-r.X0 <= clickSlop && r.Y1-r.Y0 <= clickSlop {
			e.Selection.ClearFaces()
			e.Selection.ClearDrag()
			e.Selection.Clear()
		} else {
			e.BoxSelect(r)
		}
	}
	e.endPointer()
}

func (e *Editor) endPointer() {
	switch e.pointer.mode {
	case pointerGizmo:
		e.Gizmo.MouseUp()
	case pointerGround:
		if st := e.Selection.EndDrag(); st.Kind == selection.Dragging {
			e.objectChanged(st.ID)
		}
	}
	e.pointer = pointer{}
}

func (e *Editor) boxRect() boxselect.Rect {
	s, c := e.pointer.start, e.pointer.current
	return boxselect.Rect{X0: s.X, Y0: s.Y, X1: c.X, Y1: c.Y}.Normalize()
}

// BoxRect returns the box-select rectangle while one is being drawn.
func (e *Editor) BoxRect() (boxselect.Rect, bool) {
	if e.pointer.mode != pointerBox {
		return boxselect.Rect{}, false
	}
	return e.boxRect(), true
}

// BoxSelect selects the faces whose centroids project inside r. Entities
// with every face inside are promoted: the first becomes active and all may
// be ground-dragged. Partially covered entities keep a red face selection.
func (e *Editor) BoxSelect(r boxselect.Rect) boxselect.Result {
	res := boxselect.Select(r, e.Scene.Camera, e.Registry.All())
	e.Selection.ClearDrag()
	e.Selection.SetFaces(res.Partial())
	for _, id := range res.Promoted {
		e.Selection.EnableDrag(id)
	}
	if len(res.Promoted) > 0 {
		e.Selection.SelectEntity(res.Promoted[0])
	}
	e.log.Infof("box select: %d entities, %d promoted", len(res.Order), len(res.Promoted))
	return res
}
