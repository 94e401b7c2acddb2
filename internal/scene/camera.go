package scene

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNoIntersection is returned when a ray misses what it was cast at. It is a
// normal outcome, not a failure.
var ErrNoIntersection = errors.New("no intersection")

const (
	nearPlane = 0.01
	farPlane  = 5000
)

// Camera is a perspective camera with a fixed viewport. It projects world
// points to the screen and builds picking rays without a window, so every
// pointer operation can be exercised headless.
type Camera struct {
	rl.Camera3D
	Width, Height float32
	enabled       bool
}

// NewCamera returns a camera at position looking at target with a 45° field of view.
func NewCamera(position, target rl.Vector3, width, height float32) *Camera {
	return &Camera{
		Camera3D: rl.Camera3D{
			Position:   position,
			Target:     target,
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
		Width:   width,
		Height:  height,
		enabled: true,
	}
}

// SetEnabled turns the orbit controller on or off. The gizmo disables it for
// the duration of a drag.
func (c *Camera) SetEnabled(on bool) {
	c.enabled = on
}

// Enabled reports whether the orbit controller may move the camera.
func (c *Camera) Enabled() bool {
	return c.enabled
}

// Resize sets the viewport size in pixels.
func (c *Camera) Resize(width, height float32) {
	c.Width, c.Height = width, height
}

func (c *Camera) aspect() float32 {
	if c.Height <= 0 {
		return 1
	}
	return c.Width / c.Height
}

// View returns the world-to-camera matrix.
func (c *Camera) View() rl.Matrix {
	return rl.MatrixLookAt(c.Position, c.Target, c.Up)
}

// Projection returns the camera-to-clip matrix.
func (c *Camera) Projection() rl.Matrix {
	return rl.MatrixPerspective(c.Fovy*rl.Deg2rad, c.aspect(), nearPlane, farPlane)
}

// Project maps a world point to normalized device coordinates. ok is false
// for points at or behind the camera.
func (c *Camera) Project(p rl.Vector3) (ndc rl.Vector3, ok bool) {
	m := rl.MatrixMultiply(c.View(), c.Projection())
	x := m.M0*p.X + m.M4*p.Y + m.M8*p.Z + m.M12
	y := m.M1*p.X + m.M5*p.Y + m.M9*p.Z + m.M13
	z := m.M2*p.X + m.M6*p.Y + m.M10*p.Z + m.M14
	w := m.M3*p.X + m.M7*p.Y + m.M11*p.Z + m.M15
	if w <= 0 {
		return rl.Vector3{}, false
	}
	return rl.NewVector3(x/w, y/w, z/w), true
}

// NDCToPixel maps normalized device coordinates to viewport pixels, origin top-left.
func (c *Camera) NDCToPixel(ndc rl.Vector3) rl.Vector2 {
	return rl.NewVector2((ndc.X+1)*c.Width/2, (1-ndc.Y)*c.Height/2)
}

// PixelToNDC is the inverse of NDCToPixel on the X and Y axes.
func (c *Camera) PixelToNDC(px rl.Vector2) rl.Vector2 {
	return rl.NewVector2(2*px.X/c.Width-1, 1-2*px.Y/c.Height)
}

// ToScreen projects a world point to viewport pixels.
func (c *Camera) ToScreen(p rl.Vector3) (rl.Vector2, bool) {
	ndc, ok := c.Project(p)
	if !ok {
		return rl.Vector2{}, false
	}
	return c.NDCToPixel(ndc), true
}

// RayFromNDC returns the picking ray through a point in normalized device coordinates.
func (c *Camera) RayFromNDC(ndc rl.Vector2) rl.Ray {
	view, proj := c.View(), c.Projection()
	near := rl.Vector3Unproject(rl.NewVector3(ndc.X, ndc.Y, -1), proj, view)
	far := rl.Vector3Unproject(rl.NewVector3(ndc.X, ndc.Y, 1), proj, view)
	return rl.NewRay(near, rl.Vector3Normalize(rl.Vector3Subtract(far, near)))
}

// RayFromPixel returns the picking ray through a viewport pixel.
func (c *Camera) RayFromPixel(px rl.Vector2) rl.Ray {
	return c.RayFromNDC(c.PixelToNDC(px))
}

// GroundPoint intersects ray with the ground plane y = 0.
func GroundPoint(ray rl.Ray) (rl.Vector3, error) {
	if math32.Abs(ray.Direction.Y) < 1e-6 {
		return rl.Vector3{}, ErrNoIntersection
	}
	t := -ray.Position.Y / ray.Direction.Y
	if t < 0 {
		return rl.Vector3{}, ErrNoIntersection
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t)), nil
}

// Frame moves the camera back along its current view direction until the
// bounding box fits the field of view, looking at its center.
func (c *Camera) Frame(b rl.BoundingBox) {
	center := rl.Vector3Scale(rl.Vector3Add(b.Min, b.Max), 0.5)
	radius := rl.Vector3Distance(b.Min, b.Max) / 2
	if radius <= 0 {
		radius = 1
	}
	dir := rl.Vector3Normalize(rl.Vector3Subtract(c.Position, c.Target))
	if rl.Vector3Length(dir) == 0 {
		dir = rl.Vector3Normalize(rl.NewVector3(1, 1, 1))
	}
	dist := radius / math32.Sin(c.Fovy*rl.Deg2rad/2)
	c.Target = center
	c.Position = rl.Vector3Add(center, rl.Vector3Scale(dir, dist))
}
