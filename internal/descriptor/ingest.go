package descriptor

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
)

// ErrMalformedObject is wrapped by every per-object ingest error.
var ErrMalformedObject = errors.New("malformed object")

// DefaultOpacity is used when an object has no transparency.
const DefaultOpacity = 0.9

// Options control unit conversion.
type Options struct {
	// UnitScale converts descriptor units to meters (0.001 for millimeters).
	UnitScale float32
}

// DefaultOptions reads millimeter descriptors.
func DefaultOptions() Options {
	return Options{UnitScale: 0.001}
}

func (o Options) scale() float32 {
	if o.UnitScale <= 0 {
		return 1
	}
	return o.UnitScale
}

// swap maps a descriptor point (Z up) to the working frame (Y up) and back.
func swap(x, y, z float32) rl.Vector3 {
	return rl.NewVector3(x, z, y)
}

// Ingest converts every object to a static entity. Objects that cannot be
// converted are skipped and reported, one error each.
func Ingest(doc *Document, opts Options) ([]*entity.Entity, []error) {
	var (
		out  []*entity.Entity
		errs []error
	)
	for i := range doc.Objects {
		e, err := ingestObject(&doc.Objects[i], opts.scale())
		if err != nil {
			errs = append(errs, fmt.Errorf("object %d (%s): %w", i, doc.Objects[i].ID, err))
			continue
		}
		out = append(out, e)
	}
	return out, errs
}

func ingestObject(o *Object, unit float32) (*entity.Entity, error) {
	if o.ID == "" {
		return nil, fmt.Errorf("missing id: %w", ErrMalformedObject)
	}
	if len(o.Geometry.Vertices) == 0 || len(o.Geometry.Faces) == 0 {
		return nil, fmt.Errorf("missing vertices or faces: %w", ErrMalformedObject)
	}
	verts := make([]rl.Vector3, len(o.Geometry.Vertices))
	for i, v := range o.Geometry.Vertices {
		if len(v) != 3 {
			return nil, fmt.Errorf("vertex %d has %d components: %w", i, len(v), ErrMalformedObject)
		}
		verts[i] = rl.Vector3Scale(swap(v[0], v[1], v[2]), unit)
	}
	faces := make([]entity.Face, len(o.Geometry.Faces))
	for i, f := range o.Geometry.Faces {
		faces[i] = entity.Face(f)
	}

	center := entity.BoxCenter(entity.NewGeometry(verts, nil, entity.WindingReversed).Bounds())
	for i := range verts {
		verts[i] = rl.Vector3Subtract(verts[i], center)
	}
	g := entity.NewGeometry(verts, faces, entity.WindingReversed)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedObject)
	}

	color, err := colorOf(o.Material.Color)
	if err != nil {
		return nil, err
	}
	opacity := float32(DefaultOpacity)
	if o.Material.Transparency != nil {
		opacity = *o.Material.Transparency
	}
	return &entity.Entity{
		ID:       o.ID,
		Layer:    o.Layer,
		Geometry: g,
		Material: entity.Material{
			Color:       color,
			Texture:     o.Material.Texture,
			Opacity:     opacity,
			DoubleSided: true,
		},
		Transform: entity.At(center),
		Physics: entity.PhysicsSpec{
			Shape: entity.ShapeFromBounds(entity.ShapeBox, g.Bounds()),
		},
		Visual: entity.Visual{Emissive: entity.Neutral},
	}, nil
}

func colorOf(c []float32) (rl.Color, error) {
	if len(c) == 0 {
		return rl.NewColor(0xcc, 0xcc, 0xcc, 0xff), nil
	}
	if len(c) < 3 {
		return rl.Color{}, fmt.Errorf("color has %d components: %w", len(c), ErrMalformedObject)
	}
	ch := func(v float32) uint8 { return uint8(max(0, min(255, v))) }
	return rl.NewColor(ch(c[0]), ch(c[1]), ch(c[2]), 0xff), nil
}

// Export converts entities back to descriptor objects: world-space vertices,
// recomputed transform and bounding box, inverse Y/Z swap and unit scale.
// building is passed through unchanged.
func Export(entities []*entity.Entity, building *Building, opts Options) *Document {
	inv := 1 / opts.scale()
	out := func(v rl.Vector3) [3]float32 {
		return [3]float32{v.X * inv, v.Z * inv, v.Y * inv}
	}
	doc := &Document{Objects: make([]Object, 0, len(entities)), Building: building}
	for _, e := range entities {
		world := e.WorldVertices()
		opacity := e.Material.Opacity
		o := Object{
			ID:    e.ID,
			Layer: e.Layer,
			Geometry: Geometry{
				Vertices: make([][]float32, len(world)),
				Faces:    make([][]int, len(e.Geometry.Faces)),
			},
			Material: Material{
				Color:        []float32{float32(e.Material.Color.R), float32(e.Material.Color.G), float32(e.Material.Color.B)},
				Transparency: &opacity,
				Texture:      e.Material.Texture,
			},
		}
		for i, v := range world {
			p := out(v)
			o.Geometry.Vertices[i] = p[:]
		}
		for i, f := range e.Geometry.Faces {
			o.Geometry.Faces[i] = append([]int(nil), f...)
		}
		t := e.Transform
		o.Transform = Transform{
			Position: out(t.Position),
			Rotation: [3]float32{t.Rotation.X, t.Rotation.Z, t.Rotation.Y},
			Scale:    [3]float32{t.Scale.X, t.Scale.Z, t.Scale.Y},
		}
		b := e.WorldBounds()
		o.BoundingBox = BoundingBox{Min: out(b.Min), Max: out(b.Max)}
		doc.Objects = append(doc.Objects, o)
	}
	return doc
}
