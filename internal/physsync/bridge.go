// Package physsync keeps entity poses and physics bodies in agreement: it
// steps the world, copies bodies onto visuals, enforces the ground and
// commits gizmo edits back into bodies.
package physsync

import (
	"errors"
	"fmt"

	"building-editor/internal/entity"
	"building-editor/internal/logger"
	"building-editor/internal/physics"
	"building-editor/internal/registry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Timestep is the fixed simulation step per frame. Frames are not accumulated.
const Timestep float32 = 1.0 / 60

// ErrUnknownEntity is returned by Commit for ids that are not registered.
var ErrUnknownEntity = errors.New("unknown entity")

// Bridge is the registry's BodyHost and the per-frame physics driver.
type Bridge struct {
	world *physics.World
	reg   *registry.Registry
	log   *logger.Logger
}

// New returns a bridge over world. Call Bind once the registry exists.
func New(world *physics.World, log *logger.Logger) *Bridge {
	return &Bridge{world: world, log: log}
}

// Bind sets the registry whose pairs Step and Commit operate on.
func (br *Bridge) Bind(reg *registry.Registry) {
	br.reg = reg
}

// World returns the physics world.
func (br *Bridge) World() *physics.World {
	return br.world
}

// Attach creates a body from e's physics spec at e's pose and adds it to the world.
func (br *Bridge) Attach(e *entity.Entity) *physics.Body {
	b := physics.NewBody(e.Physics, e.Transform.Position, e.Transform.Orientation())
	br.world.AddBody(b)
	return b
}

// Detach removes b from the world.
func (br *Bridge) Detach(b *physics.Body) {
	br.world.RemoveBody(b)
}

// Step advances the world by one Timestep, copies every body pose onto its
// visual except activeID's, then clamps dynamic bodies to the ground.
// Failures are logged; Step never panics.
func (br *Bridge) Step(activeID string) {
	if br.reg == nil {
		return
	}
	if !br.advance() {
		return
	}
	br.reg.Each(func(e *entity.Entity, b *physics.Body) bool {
		if b != nil {
			br.sync(e, b, e.ID == activeID)
		}
		return true
	})
}

func (br *Bridge) advance() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			br.log.Errorf("physics step: %v", r)
			ok = false
		}
	}()
	br.world.Step(Timestep)
	return true
}

func (br *Bridge) sync(e *entity.Entity, b *physics.Body, active bool) {
	defer func() {
		if r := recover(); r != nil {
			br.log.Errorf("sync %s: %v", e.ID, r)
		}
	}()
	if !active {
		e.Transform.Position = b.Position
		if !sameOrientation(e.Transform.Orientation(), b.Orientation) {
			e.Transform.Rotation = entity.EulerFromQuaternion(b.Orientation)
		}
	}
	if !e.Physics.Dynamic() {
		return
	}
	rest := e.RestHeight()
	if b.Position.Y > rest {
		return
	}
	b.Position.Y = rest
	b.PutToSleep()
	if !active {
		e.Transform.Position.Y = rest
	}
}

// Commit writes the visual pose of id into its body after a gizmo change.
// A pose at or below rest height is lifted to it and the body sleeps;
// otherwise the body wakes so gravity returns it to rest.
func (br *Bridge) Commit(id string) error {
	if br.reg == nil {
		return fmt.Errorf("commit %s: %w", id, ErrUnknownEntity)
	}
	e, ok := br.reg.Get(id)
	if !ok {
		return fmt.Errorf("commit %s: %w", id, ErrUnknownEntity)
	}
	b, ok := br.reg.Body(id)
	if !ok {
		return fmt.Errorf("commit %s: no body: %w", id, ErrUnknownEntity)
	}
	rest := e.RestHeight()
	clamped := e.Transform.Position.Y <= rest
	if clamped {
		e.Transform.Position.Y = rest
	}
	b.Position = e.Transform.Position
	b.Orientation = e.Transform.Orientation()
	b.ZeroMotion()
	if clamped {
		b.PutToSleep()
	} else {
		b.Wake()
	}
	return nil
}

// sameOrientation compares two unit quaternions up to sign.
func sameOrientation(a, b rl.Quaternion) bool {
	dot := a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
	return math32.Abs(dot) > 1-1e-6
}
