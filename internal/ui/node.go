package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Node is a single UI element: panel, label or button. Class and ID select
// its style; Index stacks repeated nodes of one class vertically.
type Node struct {
	Type   string
	Class  string
	ID     string
	Index  int
	Bounds rl.Rectangle
	Text   string
}

// NewNode creates a node with type and optional class, id and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}
