package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultGravity pulls along -Y (the working frame is Y-up).
var DefaultGravity = rl.NewVector3(0, -9.82, 0)

// World holds bodies and runs a simple step: forces and gravity, damping,
// integration, sleep, then AABB push-apart between overlapping bodies.
// There is no floor body; resting on the ground is enforced by the caller.
type World struct {
	Gravity rl.Vector3
	bodies  []*Body
}

// NewWorld returns an empty world with DefaultGravity.
func NewWorld() *World {
	return &World{Gravity: DefaultGravity}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g rl.Vector3) {
	w.Gravity = g
}

// AddBody appends a body.
func (w *World) AddBody(b *Body) {
	w.bodies = append(w.bodies, b)
}

// RemoveBody removes b and reports whether it was present.
func (w *World) RemoveBody(b *Body) bool {
	for i, x := range w.bodies {
		if x == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Bodies returns the bodies in insertion order. The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	for _, b := range w.bodies {
		if b.Static() || b.asleep {
			b.Force = rl.Vector3Zero()
			b.Torque = rl.Vector3Zero()
			continue
		}
		integrate(b, w.Gravity, dt)
		updateSleep(b, dt)
	}
	w.resolveContacts()
}

func integrate(b *Body, gravity rl.Vector3, dt float32) {
	accel := rl.Vector3Add(gravity, rl.Vector3Scale(b.Force, 1/b.Mass))
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(accel, dt))
	b.Velocity = rl.Vector3Scale(b.Velocity, damp(b.LinearDamping, dt))
	b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))

	if b.FixedRotation {
		b.AngularVelocity = rl.Vector3Zero()
	} else {
		b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3Scale(b.Torque, dt/b.Mass))
		b.AngularVelocity = rl.Vector3Scale(b.AngularVelocity, damp(b.AngularDamping, dt))
		angle := rl.Vector3Length(b.AngularVelocity) * dt
		if angle > 0 {
			axis := rl.Vector3Normalize(b.AngularVelocity)
			spin := rl.QuaternionFromAxisAngle(axis, angle)
			b.Orientation = rl.QuaternionNormalize(rl.QuaternionMultiply(spin, b.Orientation))
		}
	}
	b.Force = rl.Vector3Zero()
	b.Torque = rl.Vector3Zero()
}

// damp returns the per-step velocity factor (1-d)^dt.
func damp(d, dt float32) float32 {
	if d <= 0 {
		return 1
	}
	if d >= 1 {
		return 0
	}
	return math32.Pow(1-d, dt)
}

func updateSleep(b *Body, dt float32) {
	if b.Sleep.TimeLimit <= 0 && b.Sleep.SpeedLimit <= 0 {
		return
	}
	speed := rl.Vector3Length(b.Velocity)
	spin := rl.Vector3Length(b.AngularVelocity)
	if speed < b.Sleep.SpeedLimit && spin < b.Sleep.SpeedLimit {
		b.idleTime += dt
		if b.idleTime >= b.Sleep.TimeLimit {
			b.PutToSleep()
		}
		return
	}
	b.idleTime = 0
}

func bodyAABB(b *Body) rl.BoundingBox {
	h := b.halfExtents()
	return rl.NewBoundingBox(rl.Vector3Subtract(b.Position, h), rl.Vector3Add(b.Position, h))
}

// movable reports whether contact resolution may push b.
func movable(b *Body) bool {
	return !b.Static() && !b.asleep
}

// penetrationAxis returns the overlap depth and axis (0=X, 1=Y, 2=Z) of least
// penetration, or (0, -1) when the boxes do not overlap.
func penetrationAxis(a, b rl.BoundingBox) (depth float32, axis int) {
	overlap := [3]float32{
		min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X),
		min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y),
		min(a.Max.Z, b.Max.Z) - max(a.Min.Z, b.Min.Z),
	}
	if overlap[0] <= 0 || overlap[1] <= 0 || overlap[2] <= 0 {
		return 0, -1
	}
	depth, axis = overlap[0], 0
	for i := 1; i < 3; i++ {
		if overlap[i] < depth {
			depth, axis = overlap[i], i
		}
	}
	return depth, axis
}

// resolveContacts pushes overlapping pairs apart along the axis of least
// penetration, splitting the correction by mass between movable bodies.
func (w *World) resolveContacts() {
	for i := 0; i < len(w.bodies); i++ {
		bi := w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			bj := w.bodies[j]
			mi, mj := movable(bi), movable(bj)
			if !mi && !mj {
				continue
			}
			boxI, boxJ := bodyAABB(bi), bodyAABB(bj)
			depth, axis := penetrationAxis(boxI, boxJ)
			if axis < 0 {
				continue
			}
			// Push i toward the negative side if its center is below/behind j.
			sign := float32(-1)
			if component(bi.Position, axis) > component(bj.Position, axis) {
				sign = 1
			}
			var moveI, moveJ float32
			switch {
			case mi && mj:
				total := bi.Mass + bj.Mass
				moveI = sign * depth * (bj.Mass / total)
				moveJ = -sign * depth * (bi.Mass / total)
			case mi:
				moveI = sign * depth
			default:
				moveJ = -sign * depth
			}
			if mi {
				shift(bi, axis, moveI)
			}
			if mj {
				shift(bj, axis, moveJ)
			}
		}
	}
}

func component(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func shift(b *Body, axis int, d float32) {
	switch axis {
	case 0:
		b.Position.X += d
		b.Velocity.X = 0
	case 1:
		b.Position.Y += d
		b.Velocity.Y = 0
	case 2:
		b.Position.Z += d
		b.Velocity.Z = 0
	}
}
