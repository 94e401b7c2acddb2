package gizmo

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Plane is the surface a translate drag slides along.
type Plane struct {
	Point  rl.Vector3
	Normal rl.Vector3
}

// DragPlane picks the plane through origin for an axis mask: the plane of the
// two axes for a 2-axis mask, otherwise the plane containing the enabled axes
// that faces the viewer most.
func DragPlane(axes Axes, origin, viewDir rl.Vector3) Plane {
	switch axes {
	case PlaneXY:
		return Plane{origin, rl.NewVector3(0, 0, 1)}
	case PlaneYZ:
		return Plane{origin, rl.NewVector3(1, 0, 0)}
	case PlaneXZ:
		return Plane{origin, rl.NewVector3(0, 1, 0)}
	}
	// Single axis or all axes: face the camera, dropping the enabled axis
	// component when only one is enabled so the plane contains it.
	n := rl.Vector3Negate(viewDir)
	switch axes {
	case AxisX:
		n.X = 0
	case AxisY:
		n.Y = 0
	case AxisZ:
		n.Z = 0
	}
	if rl.Vector3Length(n) < 1e-6 {
		n = rl.NewVector3(0, 1, 0)
	}
	return Plane{origin, rl.Vector3Normalize(n)}
}

// Intersect returns where ray crosses the plane.
func (p Plane) Intersect(ray rl.Ray) (rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(p.Normal, ray.Direction)
	if math32.Abs(denom) < 1e-6 {
		return rl.Vector3{}, false
	}
	t := rl.Vector3DotProduct(p.Normal, rl.Vector3Subtract(p.Point, ray.Position)) / denom
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t)), true
}
