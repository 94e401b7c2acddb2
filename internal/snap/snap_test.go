package snap

import (
	"testing"

	"building-editor/internal/entity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

type list []*entity.Entity

func (l list) All() []*entity.Entity { return l }

func points(id string, pos rl.Vector3, verts ...rl.Vector3) *entity.Entity {
	return &entity.Entity{
		ID:        id,
		Geometry:  entity.NewGeometry(verts, []entity.Face{{0, 0, 0}}, entity.WindingAsAuthored),
		Transform: entity.At(pos),
	}
}

func TestFindNearest(t *testing.T) {
	src := list{
		points("self", rl.Vector3Zero(), rl.NewVector3(0.01, 0, 0)),
		points("a", rl.NewVector3(1, 0, 0), rl.NewVector3(0, 0, 0), rl.NewVector3(0.3, 0, 0)),
		points("b", rl.NewVector3(0, 0, 1), rl.NewVector3(0, 0, -0.6)),
	}
	tests := []struct {
		name   string
		point  rl.Vector3
		want   rl.Vector3
		wantOK bool
	}{
		{"nearest of several", rl.NewVector3(1.2, 0, 0), rl.NewVector3(1.3, 0, 0), true},
		{"excluded entity ignored", rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 0.4), true},
		{"exactly at tolerance", rl.NewVector3(1, 0.5, 0), rl.NewVector3(1, 0, 0), true},
		{"beyond tolerance", rl.NewVector3(5, 5, 5), rl.Vector3{}, false},
	}
	s := New(src, 0.5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.FindNearest(tt.point, "self")
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want.X, got.X, 1e-5)
				assert.InDelta(t, tt.want.Y, got.Y, 1e-5)
				assert.InDelta(t, tt.want.Z, got.Z, 1e-5)
			}
		})
	}
}

func TestFindNearestTieKeepsFirst(t *testing.T) {
	src := list{
		points("a", rl.NewVector3(-1, 0, 0), rl.Vector3Zero()),
		points("b", rl.NewVector3(1, 0, 0), rl.Vector3Zero()),
	}
	got, ok := New(src, 2).FindNearest(rl.Vector3Zero(), "")
	assert.True(t, ok)
	assert.Equal(t, float32(-1), got.X)
}

func TestDefaultDistance(t *testing.T) {
	assert.Equal(t, float32(DefaultDistance), New(list{}, 0).Distance)
}
