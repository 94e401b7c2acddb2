package primitives

import (
	"errors"
	"strings"
	"testing"

	"building-editor/internal/entity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogTypes(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"cube", "sphere", "cylinder", "cone", "torus", "plane"}, c.Types())
}

func TestGeneratedGeometryIsValidAndSized(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	tests := []struct {
		primType string
		size     rl.Vector3
	}{
		{"cube", rl.NewVector3(1, 1, 1)},
		{"sphere", rl.NewVector3(1, 1, 1)},
		{"cylinder", rl.NewVector3(1, 1, 1)},
		{"cone", rl.NewVector3(1, 1, 1)},
		{"torus", rl.NewVector3(1.5, 1.5, 0.5)},
		{"plane", rl.NewVector3(1, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.primType, func(t *testing.T) {
			g, err := c.Geometry(tt.primType)
			require.NoError(t, err)
			require.NoError(t, g.Validate())
			size := entity.BoxSize(g.Bounds())
			assert.InDelta(t, tt.size.X, size.X, 1e-3)
			assert.InDelta(t, tt.size.Y, size.Y, 1e-3)
			assert.InDelta(t, tt.size.Z, size.Z, 1e-3)
			center := entity.BoxCenter(g.Bounds())
			assert.InDelta(t, 0, rl.Vector3Length(center), 1e-3)
		})
	}
}

// Convex solids centered on the origin have every triangle normal pointing
// away from the origin.
func TestConvexShapesFaceOutward(t *testing.T) {
	shapes := map[string]entity.Geometry{
		"box":      Box(rl.NewVector3(2, 1, 3)),
		"sphere":   Sphere(0.5, 8, 12),
		"cylinder": Cylinder(0.5, 1, 12),
		"cone":     Cone(0.5, 1, 12),
	}
	for name, g := range shapes {
		t.Run(name, func(t *testing.T) {
			for i, tri := range g.Triangles {
				a, b, c := g.Vertices[tri[0]], g.Vertices[tri[1]], g.Vertices[tri[2]]
				n := rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
				mid := rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(a, b), c), 1.0/3)
				assert.Greater(t, rl.Vector3DotProduct(n, mid), float32(0), "triangle %d", i)
			}
		})
	}
}

func TestPlaneFacesPositiveZ(t *testing.T) {
	g := Plane(1, 1)
	require.Len(t, g.Triangles, 2)
	tri := g.Triangles[0]
	a, b, c := g.Vertices[tri[0]], g.Vertices[tri[1]], g.Vertices[tri[2]]
	n := rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a))
	assert.Greater(t, n.Z, float32(0))
}

func TestSpawn(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	e, err := c.Spawn("cube", rl.NewVector3(1, 0, 2))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(e.ID, "cube-"))
	assert.Equal(t, "cube", e.Kind)
	assert.Equal(t, rl.NewVector3(1, 0, 2), e.Transform.Position)
	assert.Equal(t, rl.NewColor(0xcc, 0xcc, 0xcc, 0xff), e.Material.Color)
	assert.InDelta(t, 0.8, e.Material.Opacity, 1e-6)
	assert.Equal(t, float32(1), e.Physics.Mass)
	assert.True(t, e.Physics.FixedRotation)
	assert.Equal(t, entity.ShapeBox, e.Physics.Shape.Kind)
	assert.Equal(t, rl.NewVector3(0.5, 0.5, 0.5), e.Physics.Shape.HalfExtents)

	other, err := c.Spawn("cube", rl.Vector3Zero())
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, other.ID)
}

func TestSpawnUnknown(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	_, err = c.Spawn("dodecahedron", rl.Vector3Zero())
	assert.True(t, errors.Is(err, ErrUnknownPrimitive))
}

func TestParseCatalogRejectsMissingType(t *testing.T) {
	_, err := ParseCatalog([]byte("primitives:\n  - size: [1, 1, 1]\n"))
	assert.Error(t, err)
}
