package entity

import rl "github.com/gen2brain/raylib-go/raylib"

// Transform is position, Euler rotation (radians, XYZ) and non-uniform scale
// in the Y-up working frame.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: rl.Vector3One()}
}

// At returns an identity transform moved to p.
func At(p rl.Vector3) Transform {
	t := IdentityTransform()
	t.Position = p
	return t
}

// Matrix returns scale, then rotation, then translation.
func (t Transform) Matrix() rl.Matrix {
	return rl.MatrixMultiply(t.Linear(), rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z))
}

// Linear returns the scale and rotation part only.
func (t Transform) Linear() rl.Matrix {
	s := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	return rl.MatrixMultiply(s, rl.QuaternionToMatrix(t.Orientation()))
}

// Apply maps a local point into world space.
func (t Transform) Apply(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(p, t.Matrix())
}

// Orientation returns the rotation as a quaternion. The rotation matrix used
// by Matrix is derived from it so visual and physics orientation agree.
func (t Transform) Orientation() rl.Quaternion {
	return rl.QuaternionFromEuler(t.Rotation.X, t.Rotation.Y, t.Rotation.Z)
}

// EulerFromQuaternion converts an orientation back to the XYZ Euler angles
// Transform stores.
func EulerFromQuaternion(q rl.Quaternion) rl.Vector3 {
	return rl.QuaternionToEuler(q)
}
