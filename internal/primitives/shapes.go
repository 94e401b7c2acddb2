package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
)

// All generators build geometry centered on the origin in the working frame
// (Y up) with outward counter-clockwise faces.

// Box returns an axis-aligned box of the given size: 8 vertices, 6 quads.
func Box(size rl.Vector3) entity.Geometry {
	x, y, z := size.X/2, size.Y/2, size.Z/2
	v := []rl.Vector3{
		{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z},
		{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z},
	}
	f := []entity.Face{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 1, 5, 4}, // -Y
		{3, 7, 6, 2}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}
	return entity.NewGeometry(v, f, entity.WindingAsAuthored)
}

// Sphere returns a UV sphere with single pole vertices and triangle caps.
func Sphere(radius float32, rings, slices int) entity.Geometry {
	rings, slices = max(rings, 2), max(slices, 3)
	v := []rl.Vector3{{Y: radius}}
	for i := 1; i < rings; i++ {
		phi := math32.Pi * float32(i) / float32(rings)
		for j := 0; j < slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			v = append(v, rl.Vector3{
				X: radius * math32.Sin(phi) * math32.Cos(theta),
				Y: radius * math32.Cos(phi),
				Z: radius * math32.Sin(phi) * math32.Sin(theta),
			})
		}
	}
	bottom := len(v)
	v = append(v, rl.Vector3{Y: -radius})

	ring := func(i, j int) int { return 1 + i*slices + j%slices }
	var f []entity.Face
	for j := 0; j < slices; j++ {
		f = append(f, entity.Face{0, ring(0, j+1), ring(0, j)})
	}
	for i := 0; i < rings-2; i++ {
		for j := 0; j < slices; j++ {
			f = append(f, entity.Face{ring(i, j), ring(i, j+1), ring(i+1, j+1), ring(i+1, j)})
		}
	}
	last := rings - 2
	for j := 0; j < slices; j++ {
		f = append(f, entity.Face{ring(last, j), ring(last, j+1), bottom})
	}
	return entity.NewGeometry(v, f, entity.WindingAsAuthored)
}

// Cylinder returns a capped cylinder along Y.
func Cylinder(radius, height float32, slices int) entity.Geometry {
	return frustum(radius, radius, height, slices)
}

// Cone returns a cone along Y with its apex up.
func Cone(radius, height float32, slices int) entity.Geometry {
	return frustum(0, radius, height, slices)
}

// frustum builds a capped solid between a bottom ring and a top ring (or apex
// when top is 0).
func frustum(top, bottom, height float32, slices int) entity.Geometry {
	slices = max(slices, 3)
	h := height / 2
	circle := func(r, y float32) []rl.Vector3 {
		out := make([]rl.Vector3, slices)
		for j := range out {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			out[j] = rl.Vector3{X: r * math32.Cos(theta), Y: y, Z: r * math32.Sin(theta)}
		}
		return out
	}
	v := circle(bottom, -h)
	bottomCenter := len(v)
	v = append(v, rl.Vector3{Y: -h})
	lo := func(j int) int { return j % slices }

	var f []entity.Face
	for j := 0; j < slices; j++ {
		f = append(f, entity.Face{bottomCenter, lo(j), lo(j + 1)})
	}
	if top == 0 {
		apex := len(v)
		v = append(v, rl.Vector3{Y: h})
		for j := 0; j < slices; j++ {
			f = append(f, entity.Face{apex, lo(j + 1), lo(j)})
		}
		return entity.NewGeometry(v, f, entity.WindingAsAuthored)
	}
	first := len(v)
	v = append(v, circle(top, h)...)
	topCenter := len(v)
	v = append(v, rl.Vector3{Y: h})
	hi := func(j int) int { return first + j%slices }
	for j := 0; j < slices; j++ {
		f = append(f, entity.Face{hi(j), hi(j + 1), lo(j + 1), lo(j)})
		f = append(f, entity.Face{topCenter, hi(j + 1), hi(j)})
	}
	return entity.NewGeometry(v, f, entity.WindingAsAuthored)
}

// Torus returns a ring standing in the XY plane.
func Torus(major, minor float32, radial, tubular int) entity.Geometry {
	radial, tubular = max(radial, 3), max(tubular, 3)
	v := make([]rl.Vector3, 0, radial*tubular)
	for i := 0; i < tubular; i++ {
		u := 2 * math32.Pi * float32(i) / float32(tubular)
		for j := 0; j < radial; j++ {
			w := 2 * math32.Pi * float32(j) / float32(radial)
			d := major + minor*math32.Cos(w)
			v = append(v, rl.Vector3{X: d * math32.Cos(u), Y: d * math32.Sin(u), Z: minor * math32.Sin(w)})
		}
	}
	at := func(i, j int) int { return (i%tubular)*radial + j%radial }
	f := make([]entity.Face, 0, radial*tubular)
	for i := 0; i < tubular; i++ {
		for j := 0; j < radial; j++ {
			f = append(f, entity.Face{at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)})
		}
	}
	return entity.NewGeometry(v, f, entity.WindingAsAuthored)
}

// Plane returns a single quad standing in the XY plane, facing +Z.
func Plane(width, height float32) entity.Geometry {
	x, y := width/2, height/2
	v := []rl.Vector3{{X: -x, Y: -y}, {X: x, Y: -y}, {X: x, Y: y}, {X: -x, Y: y}}
	return entity.NewGeometry(v, []entity.Face{{0, 1, 2, 3}}, entity.WindingAsAuthored)
}
