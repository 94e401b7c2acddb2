package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
	"building-editor/internal/physics"
)

// Readout is what the inspector shows for the active entity. ui does not
// depend on the editor; build one with ReadoutOf.
type Readout struct {
	ID       string
	Kind     string
	Layer    string
	Position rl.Vector3
	Size     rl.Vector3
	Body     string
	Color    string
	Opacity  float32
	Faces    int
	Selected int
}

// ReadoutOf summarizes e, its body (may be nil) and the number of its
// selected faces.
func ReadoutOf(e *entity.Entity, b *physics.Body, selectedFaces int) Readout {
	r := Readout{
		ID:       e.ID,
		Kind:     e.Kind,
		Layer:    e.Layer,
		Position: e.Transform.Position,
		Size:     e.Size(),
		Body:     "none",
		Color:    entity.HexColor(e.Material.Color),
		Opacity:  e.Material.Opacity,
		Faces:    e.FaceCount(),
		Selected: selectedFaces,
	}
	switch {
	case b == nil:
	case b.Static():
		r.Body = "static"
	case b.Sleeping():
		r.Body = "dynamic, asleep"
	default:
		r.Body = "dynamic"
	}
	return r
}

// Inspector is a right-side panel for the active entity.
type Inspector struct {
	panel *Node
	title *Node
	lines []*Node
}

const inspectorLines = 8

// NewInspector creates an inspector styled by .inspector, .inspector-title
// and .inspector-line.
func NewInspector() *Inspector {
	in := &Inspector{
		panel: NewNode("panel", "inspector", "", ""),
		title: NewNode("label", "inspector-title", "", "Inspector"),
	}
	for i := range inspectorLines {
		n := NewNode("label", "inspector-line", "", "")
		n.Index = i + 1
		in.lines = append(in.lines, n)
	}
	return in
}

// AppendNodes appends the inspector nodes to dst when visible, after updating
// their text from r.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, r Readout) []*Node {
	if !visible {
		return dst
	}
	text := [inspectorLines]string{
		"ID: " + r.ID,
		fmt.Sprintf("Kind: %s  Layer: %s", r.Kind, r.Layer),
		fmt.Sprintf("Position: %.2f, %.2f, %.2f", r.Position.X, r.Position.Y, r.Position.Z),
		fmt.Sprintf("Size: W %.2f m  H %.2f m  D %.2f m", r.Size.X, r.Size.Y, r.Size.Z),
		"Body: " + r.Body,
		fmt.Sprintf("Color: %s  Opacity: %.2f", r.Color, r.Opacity),
		fmt.Sprintf("Faces: %d (%d selected)", r.Faces, r.Selected),
		"",
	}
	for i, n := range in.lines {
		n.Text = text[i]
	}
	dst = append(dst, in.panel, in.title)
	return append(dst, in.lines...)
}

// Lines returns the current text of the inspector lines.
func (in *Inspector) Lines() []string {
	out := make([]string, 0, len(in.lines))
	for _, n := range in.lines {
		if n.Text != "" {
			out = append(out, n.Text)
		}
	}
	return out
}
