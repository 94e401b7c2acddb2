package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-editor/internal/entity"
	"building-editor/internal/physics"
	"building-editor/internal/primitives"
)

func TestParseCSS(t *testing.T) {
	src := []byte(`
/* chrome */
.panel { background: #202428; left: 100%; width: 240px; }
#main { color: #fff; }
div { color: #000; }
.a > .b { color: #000; }
.panel { width: 300px; }
`)
	sheet, err := ParseCSS(src)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 3)

	assert.Equal(t, ".panel", sheet.Rules[0].Selector)
	assert.Equal(t, "#202428", sheet.Rules[0].Props["background"])
	assert.Equal(t, "100%", sheet.Rules[0].Props["left"])
	assert.Equal(t, "240px", sheet.Rules[0].Props["width"])
	assert.Equal(t, "#main", sheet.Rules[1].Selector)
	assert.Equal(t, "300px", sheet.Rules[2].Props["width"])
}

func TestDefaultStylesheet(t *testing.T) {
	sheet, err := DefaultStylesheet()
	require.NoError(t, err)

	var selectors []string
	for _, r := range sheet.Rules {
		selectors = append(selectors, r.Selector)
	}
	assert.Subset(t, selectors, []string{".palette", ".palette-button", ".inspector", ".inspector-line", ".status", ".box-select"})
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want rl.Color
		ok   bool
	}{
		{"#fff", rl.NewColor(255, 255, 255, 255), true},
		{"#202428", rl.NewColor(0x20, 0x24, 0x28, 255), true},
		{"#ff000030", rl.NewColor(255, 0, 0, 0x30), true},
		{"red", rl.Black, false},
		{"#12345", rl.Black, false},
		{"#gggggg", rl.Black, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHexColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveProps(t *testing.T) {
	s := ResolveProps(map[string]string{
		"background": "#101010",
		"border":     "#ff0000",
		"width":      "120px",
		"height":     "32",
		"left":       "50%",
		"top":        "8px",
		"gap":        "6px",
		"padding":    "-3px",
		"font-size":  "14px",
	})
	assert.Equal(t, rl.NewColor(16, 16, 16, 255), s.Background)
	assert.True(t, s.HasBorder)
	assert.Equal(t, int32(120), s.Width)
	assert.Equal(t, int32(32), s.Height)
	assert.Equal(t, int32(50), s.LeftPct)
	assert.Equal(t, int32(-1), s.TopPct)
	assert.Equal(t, int32(8), s.Top)
	assert.Equal(t, int32(6), s.Gap)
	assert.Equal(t, int32(4), s.Padding, "negative padding keeps the default")
	assert.Equal(t, int32(14), s.FontSize)
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	sheet, err := DefaultStylesheet()
	require.NoError(t, err)
	return New(sheet)
}

func TestPaletteLayoutAndHit(t *testing.T) {
	e := newEngine(t)
	p := NewPalette([]string{"cube", "sphere", "cylinder"})
	e.SetNodes(p.AppendNodes(nil))
	e.Layout(1280, 720)

	n, ok := e.NodeAt(rl.NewVector2(20, 120))
	require.True(t, ok)
	kind, ok := p.TypeOf(n)
	require.True(t, ok)
	assert.Equal(t, "cylinder", kind)
	assert.Equal(t, float32(116), n.Bounds.Y)

	n, ok = e.NodeAt(rl.NewVector2(20, 600))
	require.True(t, ok)
	_, isButton := p.TypeOf(n)
	assert.False(t, isButton)
	assert.True(t, p.Contains(n))

	_, ok = e.NodeAt(rl.NewVector2(600, 300))
	assert.False(t, ok)
}

func TestInspectorRightAligned(t *testing.T) {
	e := newEngine(t)
	in := NewInspector()
	r := Readout{ID: "wall-1", Kind: "wall", Layer: "walls", Size: rl.NewVector3(1, 3, 2), Body: "static", Color: "#cccccc", Opacity: 0.9, Faces: 6}

	assert.Empty(t, in.AppendNodes(nil, false, r))

	nodes := in.AppendNodes(nil, true, r)
	e.SetNodes(nodes)
	e.Layout(1280, 720)
	assert.Equal(t, float32(940), nodes[0].Bounds.X)
	assert.Equal(t, float32(40), nodes[2].Bounds.Y)
	assert.Contains(t, in.Lines(), "Size: W 1.00 m  H 3.00 m  D 2.00 m")
	assert.Contains(t, in.Lines(), "Body: static")
}

func TestReadoutOf(t *testing.T) {
	cat, err := primitives.DefaultCatalog()
	require.NoError(t, err)
	ent, err := cat.Spawn("cube", rl.NewVector3(1, 0.5, 2))
	require.NoError(t, err)

	r := ReadoutOf(ent, nil, 0)
	assert.Equal(t, "none", r.Body)
	assert.Equal(t, "cube", r.Kind)
	assert.Equal(t, ent.FaceCount(), r.Faces)

	b := physics.NewBody(ent.Physics, ent.Transform.Position, ent.Transform.Orientation())
	assert.Equal(t, "dynamic", ReadoutOf(ent, b, 2).Body)
	b.PutToSleep()
	r = ReadoutOf(ent, b, 2)
	assert.Equal(t, "dynamic, asleep", r.Body)
	assert.Equal(t, 2, r.Selected)

	b = physics.NewBody(entity.PhysicsSpec{Shape: ent.Physics.Shape}, ent.Transform.Position, rl.QuaternionIdentity())
	assert.Equal(t, "static", ReadoutOf(ent, b, 0).Body)
}

func TestStatusHiddenWhenEmpty(t *testing.T) {
	s := NewStatus()
	assert.Empty(t, s.AppendNodes(nil, ""))
	nodes := s.AppendNodes(nil, "translate XYZ")
	require.Len(t, nodes, 1)
	assert.Equal(t, "translate XYZ", nodes[0].Text)
}
