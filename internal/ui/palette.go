package ui

// Palette is the left-side list of primitive types that can be dragged into
// the scene.
type Palette struct {
	panel   *Node
	title   *Node
	buttons []*Node
}

// NewPalette creates one button per primitive type, in order.
func NewPalette(types []string) *Palette {
	p := &Palette{
		panel: NewNode("panel", "palette", "", ""),
		title: NewNode("label", "palette-title", "", "Shapes"),
	}
	for i, t := range types {
		b := NewNode("button", "palette-button", "palette-"+t, t)
		b.Index = i
		p.buttons = append(p.buttons, b)
	}
	return p
}

// AppendNodes appends the palette nodes to dst.
func (p *Palette) AppendNodes(dst []*Node) []*Node {
	dst = append(dst, p.panel, p.title)
	return append(dst, p.buttons...)
}

// TypeOf reports the primitive type of a palette button node.
func (p *Palette) TypeOf(n *Node) (string, bool) {
	for _, b := range p.buttons {
		if b == n {
			return b.Text, true
		}
	}
	return "", false
}

// Contains reports whether n belongs to the palette, including its panel.
func (p *Palette) Contains(n *Node) bool {
	if n == p.panel || n == p.title {
		return true
	}
	_, ok := p.TypeOf(n)
	return ok
}
