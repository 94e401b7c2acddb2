// Package input maps keyboard and mouse state to editor operations.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/gizmo"
	"building-editor/internal/logger"
)

// Target is the editor surface input drives.
type Target interface {
	SetMode(m gizmo.Mode)
	SetPlane(a gizmo.Axes)
	NudgeFaces(axis gizmo.Axes, step float32) error
	NudgeStep() float32
	Delete() error
	Undo() bool
	Redo() bool
	Escape()
	FrameSelection()
	PointerDown(px rl.Vector2, ctrl bool)
	PointerMove(px rl.Vector2)
	PointerUp(px rl.Vector2)
}

// State is one frame of input.
type State struct {
	Pressed []int32
	Ctrl    bool
	Shift   bool

	Mouse        rl.Vector2
	LeftPressed  bool
	LeftDown     bool
	LeftReleased bool
	// OverUI is set when the press landed on a UI panel; the scene does not
	// see that press.
	OverUI bool
}

// watched are the keys Poll reports.
var watched = []int32{
	rl.KeyG, rl.KeyR, rl.KeyS,
	rl.KeyX, rl.KeyY, rl.KeyZ,
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyZero,
	rl.KeyDelete, rl.KeyBackspace, rl.KeyEscape, rl.KeyF,
}

// Poll reads the current raylib input state.
func Poll() State {
	s := State{
		Ctrl: rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
			rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper),
		Shift:        rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Mouse:        rl.GetMousePosition(),
		LeftPressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		LeftDown:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		LeftReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
	}
	for _, k := range watched {
		if rl.IsKeyPressed(k) {
			s.Pressed = append(s.Pressed, k)
		}
	}
	return s
}

// Dispatcher forwards input to a target and logs failed operations.
type Dispatcher struct {
	target   Target
	log      *logger.Logger
	pointing bool
}

// NewDispatcher returns a dispatcher for t.
func NewDispatcher(t Target, log *logger.Logger) *Dispatcher {
	return &Dispatcher{target: t, log: log}
}

// Dispatch applies keys first, then the pointer.
func (d *Dispatcher) Dispatch(s State) {
	for _, k := range s.Pressed {
		d.key(k, s.Ctrl, s.Shift)
	}
	d.pointer(s)
}

func (d *Dispatcher) key(k int32, ctrl, shift bool) {
	t := d.target
	if ctrl {
		switch k {
		case rl.KeyZ:
			if shift {
				t.Redo()
			} else {
				t.Undo()
			}
		case rl.KeyY:
			t.Redo()
		}
		return
	}
	switch k {
	case rl.KeyG:
		t.SetMode(gizmo.Translate)
	case rl.KeyR:
		t.SetMode(gizmo.Rotate)
	case rl.KeyS:
		t.SetMode(gizmo.Scale)
	case rl.KeyX, rl.KeyY, rl.KeyZ:
		step := t.NudgeStep()
		if shift {
			step = -step
		}
		d.report("nudge", t.NudgeFaces(nudgeAxis[k], step))
	case rl.KeyOne:
		t.SetPlane(gizmo.PlaneXY)
	case rl.KeyTwo:
		t.SetPlane(gizmo.PlaneYZ)
	case rl.KeyThree:
		t.SetPlane(gizmo.PlaneXZ)
	case rl.KeyZero:
		t.SetPlane(gizmo.AllAxes)
	case rl.KeyDelete, rl.KeyBackspace:
		d.report("delete", t.Delete())
	case rl.KeyEscape:
		d.pointing = false
		t.Escape()
	case rl.KeyF:
		t.FrameSelection()
	}
}

var nudgeAxis = map[int32]gizmo.Axes{
	rl.KeyX: gizmo.AxisX,
	rl.KeyY: gizmo.AxisY,
	rl.KeyZ: gizmo.AxisZ,
}

func (d *Dispatcher) pointer(s State) {
	switch {
	case s.LeftPressed && !s.OverUI:
		d.pointing = true
		d.target.PointerDown(s.Mouse, s.Ctrl)
	case s.LeftReleased && d.pointing:
		d.pointing = false
		d.target.PointerUp(s.Mouse)
	case s.LeftDown && d.pointing:
		d.target.PointerMove(s.Mouse)
	}
}

func (d *Dispatcher) report(op string, err error) {
	if err != nil {
		d.log.Warnf("%s: %v", op, err)
	}
}
