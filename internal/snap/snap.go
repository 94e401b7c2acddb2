// Package snap finds the nearest vertex of other entities to a point.
package snap

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
)

// DefaultDistance is the snap tolerance in meters.
const DefaultDistance = 0.5

// Source lists the entities whose vertices are snap candidates.
type Source interface {
	All() []*entity.Entity
}

// Engine searches world-space vertices within Distance of a point.
type Engine struct {
	src      Source
	Distance float32
}

// New returns an engine over src. distance <= 0 uses DefaultDistance.
func New(src Source, distance float32) *Engine {
	if distance <= 0 {
		distance = DefaultDistance
	}
	return &Engine{src: src, Distance: distance}
}

// FindNearest returns the closest world-space vertex of any entity other than
// excludeID, if one lies within Distance. Ties keep the first candidate in
// entity then vertex order.
func (s *Engine) FindNearest(point rl.Vector3, excludeID string) (rl.Vector3, bool) {
	var (
		best  rl.Vector3
		bestD float32
		found bool
	)
	for _, e := range s.src.All() {
		if e.ID == excludeID {
			continue
		}
		for _, v := range e.WorldVertices() {
			d := rl.Vector3Distance(point, v)
			if d > s.Distance {
				continue
			}
			if !found || d < bestD {
				best, bestD, found = v, d, true
			}
		}
	}
	return best, found
}
