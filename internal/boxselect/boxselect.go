// Package boxselect selects faces whose projected centroids fall inside a
// screen rectangle.
package boxselect

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
)

// Projector maps world points to viewport pixels. ok is false for points
// behind the camera.
type Projector interface {
	ToScreen(p rl.Vector3) (px rl.Vector2, ok bool)
}

// Rect is a drag rectangle in pixels. Corners may be given in any order.
type Rect struct {
	X0, Y0, X1, Y1 float32
}

// Normalize returns the rectangle with X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	return Rect{min(r.X0, r.X1), min(r.Y0, r.Y1), max(r.X0, r.X1), max(r.Y0, r.Y1)}
}

// Contains reports inclusive containment of p in the normalized rectangle.
func (r Rect) Contains(p rl.Vector2) bool {
	n := r.Normalize()
	return p.X >= n.X0 && p.X <= n.X1 && p.Y >= n.Y0 && p.Y <= n.Y1
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	n := r.Normalize()
	return n.X1-n.X0 == 0 || n.Y1-n.Y0 == 0
}

// Result lists the hit faces per entity in scene order and the entities
// whose every face was hit.
type Result struct {
	Faces    map[string][]int
	Order    []string
	Promoted []string
}

// Empty reports whether nothing was hit.
func (r Result) Empty() bool {
	return len(r.Order) == 0
}

// Partial returns the hit faces of entities that were not promoted.
func (r Result) Partial() map[string][]int {
	promoted := make(map[string]bool, len(r.Promoted))
	for _, id := range r.Promoted {
		promoted[id] = true
	}
	out := make(map[string][]int)
	for _, id := range r.Order {
		if !promoted[id] {
			out[id] = r.Faces[id]
		}
	}
	return out
}

// Select tests every face centroid of every entity against rect.
func Select(rect Rect, proj Projector, entities []*entity.Entity) Result {
	res := Result{Faces: make(map[string][]int)}
	for _, e := range entities {
		var hits []int
		for fi := range e.Geometry.Faces {
			px, ok := proj.ToScreen(e.WorldCentroid(fi))
			if ok && rect.Contains(px) {
				hits = append(hits, fi)
			}
		}
		if len(hits) == 0 {
			continue
		}
		res.Faces[e.ID] = hits
		res.Order = append(res.Order, e.ID)
		if len(hits) == e.FaceCount() {
			res.Promoted = append(res.Promoted, e.ID)
		}
	}
	return res
}
