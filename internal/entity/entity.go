// Package entity defines the unit of editing: one building component with
// geometry, material, pose and the physics description its body is built from.
package entity

import (
	"github.com/jinzhu/copier"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Neutral is the emissive of an entity that is not highlighted.
var Neutral = rl.NewColor(0, 0, 0, 255)

// Material is color (or deferred texture reference), opacity and sidedness.
type Material struct {
	Color       rl.Color
	Texture     string
	Opacity     float32
	DoubleSided bool
}

// ShapeKind names the collision shape of a body.
type ShapeKind string

const (
	ShapeBox      ShapeKind = "box"
	ShapeSphere   ShapeKind = "sphere"
	ShapeCylinder ShapeKind = "cylinder"
	ShapeCone     ShapeKind = "cone"
	ShapePlane    ShapeKind = "plane"
)

// Shape is a collision shape sized from an AABB when the entity is created.
type Shape struct {
	Kind        ShapeKind
	HalfExtents rl.Vector3
	Radius      float32
	Height      float32
}

// ShapeFromBounds derives a shape of the given kind from a bounding box.
func ShapeFromBounds(kind ShapeKind, b rl.BoundingBox) Shape {
	size := BoxSize(b)
	s := Shape{Kind: kind, HalfExtents: rl.Vector3Scale(size, 0.5), Height: size.Y}
	switch kind {
	case ShapeSphere:
		s.Radius = max(size.X, size.Y, size.Z) / 2
	case ShapeCylinder, ShapeCone:
		s.Radius = max(size.X, size.Z) / 2
	case ShapePlane:
		s.Height = 0
	}
	return s
}

// SleepPolicy forces a body to rest once its speed stays below SpeedLimit for
// TimeLimit seconds.
type SleepPolicy struct {
	SpeedLimit float32
	TimeLimit  float32
}

// PhysicsSpec is everything needed to (re)create an entity's body.
type PhysicsSpec struct {
	Shape          Shape
	Mass           float32
	LinearDamping  float32
	AngularDamping float32
	FixedRotation  bool
	Sleep          SleepPolicy
}

// Dynamic reports whether gravity acts on the body.
func (p PhysicsSpec) Dynamic() bool {
	return p.Mass > 0
}

// Visual is per-frame presentation state. It is not captured by history.
type Visual struct {
	Emissive      rl.Color
	FaceHighlight map[int]rl.Color
}

// Entity is one editable building component.
type Entity struct {
	ID        string
	Kind      string
	Layer     string
	Geometry  Geometry
	Material  Material
	Transform Transform
	Physics   PhysicsSpec

	Visual Visual `copier:"-"`
}

// Clone returns a deep copy with neutral visual state.
func (e *Entity) Clone() (*Entity, error) {
	out := &Entity{}
	if err := copier.CopyWithOption(out, e, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	out.Visual = Visual{Emissive: Neutral}
	return out, nil
}

// FaceCount returns the number of polygon faces.
func (e *Entity) FaceCount() int {
	return len(e.Geometry.Faces)
}

// WorldVertices returns every vertex transformed into world space, in
// geometry order.
func (e *Entity) WorldVertices() []rl.Vector3 {
	m := e.Transform.Matrix()
	out := make([]rl.Vector3, len(e.Geometry.Vertices))
	for i, v := range e.Geometry.Vertices {
		out[i] = rl.Vector3Transform(v, m)
	}
	return out
}

// WorldBounds returns the world-space AABB of the current geometry and pose.
func (e *Entity) WorldBounds() rl.BoundingBox {
	return boundsOf(e.WorldVertices())
}

// Size returns the world-space AABB dimensions, as shown in the dimensions
// readout.
func (e *Entity) Size() rl.Vector3 {
	return BoxSize(e.WorldBounds())
}

// Height returns the AABB height of the rotated and scaled geometry,
// independent of position.
func (e *Entity) Height() float32 {
	m := e.Transform.Linear()
	pts := make([]rl.Vector3, len(e.Geometry.Vertices))
	for i, v := range e.Geometry.Vertices {
		pts[i] = rl.Vector3Transform(v, m)
	}
	return BoxSize(boundsOf(pts)).Y
}

// RestHeight is the lowest Y the entity's origin may rest at.
func (e *Entity) RestHeight() float32 {
	return e.Height() / 2
}

// WorldCentroid returns a face centroid in world space.
func (e *Entity) WorldCentroid(face int) rl.Vector3 {
	return e.Transform.Apply(e.Geometry.Centroid(face))
}

// WorldTriangle returns the three world-space corners of triangle i.
func (e *Entity) WorldTriangle(m rl.Matrix, i int) (a, b, c rl.Vector3) {
	t := e.Geometry.Triangles[i]
	v := e.Geometry.Vertices
	return rl.Vector3Transform(v[t[0]], m), rl.Vector3Transform(v[t[1]], m), rl.Vector3Transform(v[t[2]], m)
}
