package boxselect

import (
	"fmt"
	"testing"

	"building-editor/internal/entity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flat maps world (x, z) straight to pixels and treats y < 0 as behind the camera.
type flat struct{}

func (flat) ToScreen(p rl.Vector3) (rl.Vector2, bool) {
	if p.Y < 0 {
		return rl.Vector2{}, false
	}
	return rl.NewVector2(p.X, p.Z), true
}

// strip returns an entity with n unit triangles laid along X, face i centered
// near x = i + 1/3.
func strip(id string, n int) *entity.Entity {
	var verts []rl.Vector3
	var faces []entity.Face
	for i := 0; i < n; i++ {
		x := float32(i)
		base := len(verts)
		verts = append(verts, rl.NewVector3(x, 0, 0), rl.NewVector3(x+1, 0, 0), rl.NewVector3(x, 0, 1))
		faces = append(faces, entity.Face{base, base + 1, base + 2})
	}
	return &entity.Entity{
		ID:        id,
		Geometry:  entity.NewGeometry(verts, faces, entity.WindingAsAuthored),
		Transform: entity.IdentityTransform(),
	}
}

func TestPromotionNeedsEveryFace(t *testing.T) {
	e := strip("wall", 100)
	tests := []struct {
		name         string
		rect         Rect
		wantHits     int
		wantPromoted bool
	}{
		{"all faces", Rect{-1, -1, 101, 2}, 100, true},
		{"99 of 100", Rect{-1, -1, 99, 2}, 99, false},
		{"reversed corners", Rect{101, 2, -1, -1}, 100, true},
		{"none", Rect{200, 200, 300, 300}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Select(tt.rect, flat{}, []*entity.Entity{e})
			assert.Len(t, res.Faces["wall"], tt.wantHits)
			assert.Equal(t, tt.wantPromoted, len(res.Promoted) == 1)
		})
	}
}

func TestContainmentIsInclusive(t *testing.T) {
	e := strip("tri", 1)
	c := e.WorldCentroid(0)
	res := Select(Rect{c.X, c.Z, c.X + 5, c.Z + 5}, flat{}, []*entity.Entity{e})
	assert.Equal(t, []string{"tri"}, res.Promoted)
}

func TestBehindCameraNeverCounts(t *testing.T) {
	e := strip("low", 3)
	e.Transform.Position.Y = -1
	res := Select(Rect{-100, -100, 100, 100}, flat{}, []*entity.Entity{e})
	assert.True(t, res.Empty())
}

func TestPartialAndOrder(t *testing.T) {
	var es []*entity.Entity
	for i := 0; i < 3; i++ {
		e := strip(fmt.Sprintf("e%d", i), 4)
		e.Transform.Position.Z = float32(i * 10)
		es = append(es, e)
	}
	res := Select(Rect{-1, -1, 2.5, 25}, flat{}, es)
	require.Equal(t, []string{"e0", "e1", "e2"}, res.Order)
	assert.Empty(t, res.Promoted)
	assert.Equal(t, []int{0, 1, 2}, res.Partial()["e1"])
}
