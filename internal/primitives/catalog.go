// Package primitives is the shape palette: CPU geometry generators for the
// spawnable solids and the YAML catalog that sizes and colors them.
package primitives

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
)

//go:embed assets/primitives.yaml
var defaultCatalog []byte

// ErrUnknownPrimitive is returned for palette types the catalog does not define.
var ErrUnknownPrimitive = errors.New("unknown primitive")

// Spawned shapes fall under gravity, never tip over and come to rest quickly.
const (
	spawnMass     = 1
	spawnDamping  = 0.99
	sleepSpeed    = 0.1
	sleepTimeSecs = 0.1
)

// Catalog maps palette type names to definitions, in file order.
type Catalog struct {
	defs  map[string]PrimitiveDef
	order []string
}

// DefaultCatalog returns the embedded palette.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a palette YAML document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse primitive catalog: %w", err)
	}
	c := &Catalog{defs: make(map[string]PrimitiveDef)}
	for _, d := range file.Primitives {
		if d.Type == "" {
			return nil, fmt.Errorf("parse primitive catalog: entry without type")
		}
		if _, dup := c.defs[d.Type]; !dup {
			c.order = append(c.order, d.Type)
		}
		c.defs[d.Type] = d
	}
	return c, nil
}

// Types returns the palette type names in catalog order.
func (c *Catalog) Types() []string {
	return append([]string(nil), c.order...)
}

// Geometry generates the local geometry of a palette type.
func (c *Catalog) Geometry(primType string) (entity.Geometry, error) {
	d, ok := c.defs[primType]
	if !ok {
		return entity.Geometry{}, fmt.Errorf("%q: %w", primType, ErrUnknownPrimitive)
	}
	w, h, dp := d.Size[0], d.Size[1], d.Size[2]
	switch d.Type {
	case "cube":
		return Box(rl.NewVector3(w, h, dp)), nil
	case "sphere":
		return Sphere(w/2, d.Rings, d.Segments), nil
	case "cylinder":
		return Cylinder(w/2, h, d.Segments), nil
	case "cone":
		return Cone(w/2, h, d.Segments), nil
	case "torus":
		minor := dp / 2
		return Torus(w/2-minor, minor, d.Rings, d.Segments), nil
	case "plane":
		return Plane(w, h), nil
	}
	return entity.Geometry{}, fmt.Errorf("%q has no generator: %w", primType, ErrUnknownPrimitive)
}

// Spawn builds a new dynamic entity of the given type at position with a
// fresh "<type>-<uuid>" id. The caller clamps it to the ground.
func (c *Catalog) Spawn(primType string, position rl.Vector3) (*entity.Entity, error) {
	g, err := c.Geometry(primType)
	if err != nil {
		return nil, err
	}
	d := c.defs[primType]
	color := rl.NewColor(0xcc, 0xcc, 0xcc, 0xff)
	if d.Color != "" {
		if color, err = entity.ParseColor(d.Color); err != nil {
			return nil, fmt.Errorf("%q: %w", primType, err)
		}
	}
	opacity := d.Opacity
	if opacity == 0 {
		opacity = 1
	}
	shape := entity.ShapeKind(d.Shape)
	if shape == "" {
		shape = entity.ShapeBox
	}
	return &entity.Entity{
		ID:       primType + "-" + uuid.NewString(),
		Kind:     primType,
		Geometry: g,
		Material: entity.Material{
			Color:       color,
			Opacity:     opacity,
			DoubleSided: primType == "plane",
		},
		Transform: entity.At(position),
		Physics: entity.PhysicsSpec{
			Shape:          entity.ShapeFromBounds(shape, g.Bounds()),
			Mass:           spawnMass,
			LinearDamping:  spawnDamping,
			AngularDamping: spawnDamping,
			FixedRotation:  true,
			Sleep:          entity.SleepPolicy{SpeedLimit: sleepSpeed, TimeLimit: sleepTimeSecs},
		},
		Visual: entity.Visual{Emissive: entity.Neutral},
	}, nil
}
