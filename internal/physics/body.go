package physics

import (
	"building-editor/internal/entity"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is a rigid body with a pose, motion state and a collision shape fixed at
// creation. Mass 0 means static: no gravity, never moved by collisions.
type Body struct {
	Position        rl.Vector3
	Orientation     rl.Quaternion
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3
	Force           rl.Vector3
	Torque          rl.Vector3

	Shape          entity.Shape
	Mass           float32
	LinearDamping  float32
	AngularDamping float32
	FixedRotation  bool
	Sleep          entity.SleepPolicy

	asleep   bool
	idleTime float32
}

// NewBody returns an awake body built from spec at the given pose.
func NewBody(spec entity.PhysicsSpec, position rl.Vector3, orientation rl.Quaternion) *Body {
	return &Body{
		Position:       position,
		Orientation:    orientation,
		Shape:          spec.Shape,
		Mass:           spec.Mass,
		LinearDamping:  spec.LinearDamping,
		AngularDamping: spec.AngularDamping,
		FixedRotation:  spec.FixedRotation,
		Sleep:          spec.Sleep,
	}
}

// Static reports whether the body ignores gravity and collision response.
func (b *Body) Static() bool {
	return b.Mass <= 0
}

// Sleeping reports whether the body is at forced rest.
func (b *Body) Sleeping() bool {
	return b.asleep
}

// ZeroMotion clears velocity, angular velocity, force and torque.
func (b *Body) ZeroMotion() {
	b.Velocity = rl.Vector3Zero()
	b.AngularVelocity = rl.Vector3Zero()
	b.Force = rl.Vector3Zero()
	b.Torque = rl.Vector3Zero()
}

// PutToSleep zeroes all motion and stops integration until Wake.
func (b *Body) PutToSleep() {
	b.ZeroMotion()
	b.asleep = true
	b.idleTime = 0
}

// Wake resumes integration.
func (b *Body) Wake() {
	b.asleep = false
	b.idleTime = 0
}

// halfExtents returns the AABB half size used for contact resolution.
func (b *Body) halfExtents() rl.Vector3 {
	switch b.Shape.Kind {
	case entity.ShapeSphere:
		r := b.Shape.Radius
		return rl.NewVector3(r, r, r)
	case entity.ShapeCylinder, entity.ShapeCone:
		r := b.Shape.Radius
		return rl.NewVector3(r, b.Shape.Height/2, r)
	}
	return b.Shape.HalfExtents
}
