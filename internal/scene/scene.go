// Package scene holds the editor camera, the ground grid and the optional
// lighting environment.
package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220

	orbitSpeed = 0.005
	zoomStep   = 0.1
	minPitch   = 0.05
	minRadius  = 1
)

// Scene holds the camera, environment and grid state. Update runs the orbit
// controller; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      *Camera
	Env         *Environment
	GridVisible bool
}

// New returns a scene with a perspective camera at (10,10,10) looking at the
// origin. Grid is visible by default.
func New(width, height float32) *Scene {
	return &Scene{
		Camera:      NewCamera(rl.NewVector3(10, 10, 10), rl.Vector3Zero(), width, height),
		Env:         NewEnvironment(),
		GridVisible: true,
	}
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Orbit rotates the camera around its target by yaw and pitch radians,
// keeping the distance and staying above the ground plane.
func (c *Camera) Orbit(yaw, pitch float32) {
	off := rl.Vector3Subtract(c.Position, c.Target)
	r := rl.Vector3Length(off)
	if r == 0 {
		return
	}
	theta := math32.Atan2(off.X, off.Z) - yaw
	phi := math32.Acos(off.Y/r) - pitch
	phi = max(minPitch, min(math32.Pi/2-minPitch, phi))
	c.Position = rl.Vector3Add(c.Target, rl.NewVector3(
		r*math32.Sin(phi)*math32.Sin(theta),
		r*math32.Cos(phi),
		r*math32.Sin(phi)*math32.Cos(theta),
	))
}

// Zoom scales the distance to the target by factor.
func (c *Camera) Zoom(factor float32) {
	off := rl.Vector3Subtract(c.Position, c.Target)
	if rl.Vector3Length(off)*factor < minRadius {
		return
	}
	c.Position = rl.Vector3Add(c.Target, rl.Vector3Scale(off, factor))
}

// Update runs once per frame: keeps the viewport in sync with the window and,
// while the controller is enabled, orbits on right-drag and zooms on the wheel.
func (s *Scene) Update() {
	s.Camera.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	if !s.Camera.Enabled() {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		s.Camera.Orbit(d.X*orbitSpeed, d.Y*orbitSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.Camera.Zoom(1 - wheel*zoomStep)
	}
}

// Draw renders the grid and then calls drawWorld inside 3D mode. Call after
// ClearBackground and before 2D overlays.
func (s *Scene) Draw(drawWorld func()) {
	rl.BeginMode3D(s.Camera.Camera3D)
	if s.GridVisible {
		drawEditorGrid()
	}
	if drawWorld != nil {
		drawWorld()
	}
	rl.EndMode3D()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), axisZ)
}
