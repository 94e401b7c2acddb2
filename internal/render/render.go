// Package render draws entities as flat-shaded triangles inside 3D mode, lit
// by the scene environment, plus the gizmo handles of the active entity.
package render

import (
	"sort"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
	"building-editor/internal/gizmo"
)

const (
	specularPower    = 48
	specularStrength = 0.35
)

// lightColor is a soft warm white.
var lightColor = rl.NewVector3(1.0, 0.98, 0.95)

// Light is the per-frame lighting state.
type Light struct {
	// Dir points from the scene toward the light.
	Dir     rl.Vector3
	Sun     float32
	Ambient float32
	// View is the camera position, for specular and transparency order.
	View rl.Vector3
}

// Tri is one shaded world-space triangle ready to draw.
type Tri struct {
	A, B, C     rl.Vector3
	Color       rl.Color
	DoubleSided bool
	depth       float32
}

// Shade returns the lit color of a surface with unit normal n at point p:
// ambient plus diffuse plus specular on base, then emissive added. Opacity
// becomes the alpha.
func Shade(base, emissive rl.Color, opacity float32, n, p rl.Vector3, l Light) rl.Color {
	tint := rl.NewVector3(float32(base.R)/255, float32(base.G)/255, float32(base.B)/255)
	ld := rl.Vector3Normalize(l.Dir)
	ndotl := max(rl.Vector3DotProduct(n, ld), 0)

	out := rl.Vector3Scale(tint, l.Ambient)
	out = rl.Vector3Add(out, rl.Vector3Scale(rl.Vector3Multiply(tint, lightColor), ndotl*l.Sun))
	if ndotl > 0 {
		v := rl.Vector3Normalize(rl.Vector3Subtract(l.View, p))
		h := rl.Vector3Normalize(rl.Vector3Add(ld, v))
		spec := math32.Pow(max(rl.Vector3DotProduct(n, h), 0), specularPower) * specularStrength
		out = rl.Vector3Add(out, rl.Vector3Scale(lightColor, spec))
	}
	return rl.NewColor(
		channel(out.X, emissive.R),
		channel(out.Y, emissive.G),
		channel(out.Z, emissive.B),
		uint8(max(0, min(1, opacity))*255),
	)
}

func channel(v float32, emissive uint8) uint8 {
	return uint8(min(255, v*255+float32(emissive)))
}

// Triangles shades every triangle of ents. Opaque triangles come first in
// entity order, then translucent ones from far to near.
func Triangles(ents []*entity.Entity, l Light) []Tri {
	var opaque, clear []Tri
	for _, e := range ents {
		m := e.Transform.Matrix()
		mat := e.Material
		for i := range e.Geometry.Triangles {
			a, b, c := e.WorldTriangle(m, i)
			n := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
			center := rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(a, b), c), 1.0/3)
			toView := rl.Vector3Subtract(l.View, center)
			if mat.DoubleSided && rl.Vector3DotProduct(n, toView) < 0 {
				n = rl.Vector3Negate(n)
			}
			t := Tri{
				A: a, B: b, C: c,
				Color:       Shade(mat.Color, emissiveOf(e, i), mat.Opacity, n, center, l),
				DoubleSided: mat.DoubleSided,
				depth:       rl.Vector3Length(toView),
			}
			if mat.Opacity < 1 {
				clear = append(clear, t)
			} else {
				opaque = append(opaque, t)
			}
		}
	}
	sort.SliceStable(clear, func(i, j int) bool { return clear[i].depth > clear[j].depth })
	return append(opaque, clear...)
}

// emissiveOf returns the face highlight of triangle i, or the entity emissive.
func emissiveOf(e *entity.Entity, i int) rl.Color {
	if len(e.Visual.FaceHighlight) > 0 && i < len(e.Geometry.TriangleFace) {
		if c, ok := e.Visual.FaceHighlight[e.Geometry.TriangleFace[i]]; ok {
			return c
		}
	}
	return e.Visual.Emissive
}

// Draw draws tris. Call between BeginMode3D and EndMode3D.
func Draw(tris []Tri) {
	for _, t := range tris {
		rl.DrawTriangle3D(t.A, t.B, t.C, t.Color)
		if t.DoubleSided {
			rl.DrawTriangle3D(t.A, t.C, t.B, t.Color)
		}
	}
}

var axisColors = [3]rl.Color{
	rl.NewColor(230, 60, 60, 255),
	rl.NewColor(60, 200, 60, 255),
	rl.NewColor(60, 90, 230, 255),
}

// Handle is one gizmo axis line.
type Handle struct {
	Axis    gizmo.Axes
	From    rl.Vector3
	To      rl.Vector3
	Color   rl.Color
	Enabled bool
}

// Handles returns the three axis handles of the gizmo attached to e, sized
// from its bounds. Axes outside the constraint are dimmed.
func Handles(e *entity.Entity, axes gizmo.Axes) []Handle {
	size := e.Size()
	length := max(size.X, size.Y, size.Z)*0.5 + 0.5
	p := e.Transform.Position
	dirs := [3]rl.Vector3{{X: 1}, {Y: 1}, {Z: 1}}
	out := make([]Handle, 0, 3)
	for i, a := range []gizmo.Axes{gizmo.AxisX, gizmo.AxisY, gizmo.AxisZ} {
		h := Handle{
			Axis:    a,
			From:    p,
			To:      rl.Vector3Add(p, rl.Vector3Scale(dirs[i], length)),
			Color:   axisColors[i],
			Enabled: axes.Has(a),
		}
		if !h.Enabled {
			h.Color = rl.ColorAlpha(h.Color, 0.25)
		}
		out = append(out, h)
	}
	return out
}

// DrawGizmo draws the handles with a tip per mode: cubes for translate and
// scale, rings for rotate. Call between BeginMode3D and EndMode3D.
func DrawGizmo(handles []Handle, mode gizmo.Mode) {
	rings := [3]rl.Vector3{{Y: 1}, {X: 1}, {X: 1}}
	angles := [3]float32{90, 90, 0}
	for i, h := range handles {
		rl.DrawLine3D(h.From, h.To, h.Color)
		switch mode {
		case gizmo.Rotate:
			r := rl.Vector3Distance(h.From, h.To)
			rl.DrawCircle3D(h.From, r, rings[i], angles[i], h.Color)
		case gizmo.Scale:
			rl.DrawCube(h.To, 0.15, 0.15, 0.15, h.Color)
		default:
			rl.DrawSphere(h.To, 0.08, h.Color)
		}
	}
}
