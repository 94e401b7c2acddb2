package ui

// Status is a single centered line at the top of the screen showing mode,
// axes and snapping.
type Status struct {
	node *Node
}

// NewStatus creates a status line styled by .status.
func NewStatus() *Status {
	return &Status{node: NewNode("label", "status", "", "")}
}

// AppendNodes sets the text and appends the node to dst. Empty text hides it.
func (s *Status) AppendNodes(dst []*Node, text string) []*Node {
	if text == "" {
		return dst
	}
	s.node.Text = text
	return append(dst, s.node)
}
