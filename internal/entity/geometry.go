package entity

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Face is an ordered list of 3 or 4 vertex indices into Geometry.Vertices.
type Face []int

// Winding selects how faces are split into triangles.
type Winding int

const (
	// WindingAsAuthored keeps the face order: (0,1,2) and (0,2,3).
	WindingAsAuthored Winding = iota
	// WindingReversed flips every triangle: (0,2,1) and (0,3,2).
	// Used for descriptor ingest because the Y/Z swap mirrors the frame.
	WindingReversed
)

// Geometry is a point cloud plus polygon faces. Triangles are derived once by
// NewGeometry with a fixed fan rule and are not re-derived when vertices move.
type Geometry struct {
	Vertices  []rl.Vector3
	Faces     []Face
	Triangles [][3]int
	// TriangleFace maps each triangle back to the face it came from.
	TriangleFace []int
	Winding      Winding
}

// NewGeometry copies vertices and faces and triangulates the faces.
func NewGeometry(vertices []rl.Vector3, faces []Face, w Winding) Geometry {
	g := Geometry{
		Vertices: append([]rl.Vector3(nil), vertices...),
		Faces:    make([]Face, len(faces)),
		Winding:  w,
	}
	for i, f := range faces {
		g.Faces[i] = append(Face(nil), f...)
	}
	g.triangulate()
	return g
}

func (g *Geometry) triangulate() {
	g.Triangles = g.Triangles[:0]
	g.TriangleFace = g.TriangleFace[:0]
	for fi, f := range g.Faces {
		for k := 1; k+1 < len(f); k++ {
			tri := [3]int{f[0], f[k], f[k+1]}
			if g.Winding == WindingReversed {
				tri = [3]int{f[0], f[k+1], f[k]}
			}
			g.Triangles = append(g.Triangles, tri)
			g.TriangleFace = append(g.TriangleFace, fi)
		}
	}
}

// Validate reports missing vertices or faces, faces that are not triangles or
// quads, and out-of-range indices.
func (g Geometry) Validate() error {
	if len(g.Vertices) == 0 {
		return fmt.Errorf("no vertices")
	}
	if len(g.Faces) == 0 {
		return fmt.Errorf("no faces")
	}
	for i, f := range g.Faces {
		if len(f) < 3 || len(f) > 4 {
			return fmt.Errorf("face %d has %d indices, want 3 or 4", i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(g.Vertices) {
				return fmt.Errorf("face %d index %d out of range [0,%d)", i, idx, len(g.Vertices))
			}
		}
	}
	return nil
}

// Centroid returns the mean of a face's vertices in local space.
func (g Geometry) Centroid(face int) rl.Vector3 {
	f := g.Faces[face]
	var c rl.Vector3
	for _, idx := range f {
		c = rl.Vector3Add(c, g.Vertices[idx])
	}
	return rl.Vector3Scale(c, 1/float32(len(f)))
}

// FaceVertices returns the distinct vertex indices used by the given faces, in
// first-seen order.
func (g Geometry) FaceVertices(faces []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, fi := range faces {
		if fi < 0 || fi >= len(g.Faces) {
			continue
		}
		for _, idx := range g.Faces[fi] {
			if !seen[idx] {
				seen[idx] = true
				out = append(out, idx)
			}
		}
	}
	return out
}

// Bounds returns the local-space axis-aligned bounding box.
func (g Geometry) Bounds() rl.BoundingBox {
	return boundsOf(g.Vertices)
}

func boundsOf(points []rl.Vector3) rl.BoundingBox {
	if len(points) == 0 {
		return rl.BoundingBox{}
	}
	inf := math32.Inf(1)
	minV := rl.NewVector3(inf, inf, inf)
	maxV := rl.NewVector3(-inf, -inf, -inf)
	for _, p := range points {
		minV = rl.Vector3Min(minV, p)
		maxV = rl.Vector3Max(maxV, p)
	}
	return rl.NewBoundingBox(minV, maxV)
}

// BoxSize returns max-min of a bounding box.
func BoxSize(b rl.BoundingBox) rl.Vector3 {
	return rl.Vector3Subtract(b.Max, b.Min)
}

// BoxCenter returns the midpoint of a bounding box.
func BoxCenter(b rl.BoundingBox) rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(b.Min, b.Max), 0.5)
}
