package ui

import (
	_ "embed"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 20

//go:embed assets/editor.css
var editorCSS []byte

// DefaultStylesheet parses the embedded editor stylesheet.
func DefaultStylesheet() (*Stylesheet, error) {
	return ParseCSS(editorCSS)
}

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order. Resolved styles are cached until the sheet or
// the node list changes.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
	font         rl.Font
}

// New creates an engine drawing with sheet. A nil sheet draws nothing but text.
func New(sheet *Stylesheet) *Engine {
	return &Engine{sheet: sheet}
}

// LoadCSS parses a CSS file from path and replaces the stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(data)
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// LoadFont loads a TTF font for text. Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// SetNodes replaces all nodes. Passing the same slice contents keeps the
// style cache.
func (e *Engine) SetNodes(nodes []*Node) {
	if sameNodes(e.nodes, nodes) {
		return
	}
	e.nodes = append(e.nodes[:0], nodes...)
	e.cacheValid = false
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// resolveProps merges the properties of every rule matching n's class or id.
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		sel := rule.Selector
		if len(sel) < 2 {
			continue
		}
		if (sel[0] == '.' && n.Class == sel[1:]) || (sel[0] == '#' && n.ID != "" && n.ID == sel[1:]) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Layout resolves styles and sets every node's bounds for a screen of the
// given size. Percent positions place the node's box inside the screen, and
// Index stacks repeated nodes by height plus gap.
func (e *Engine) Layout(screenW, screenH int32) {
	if !e.cacheValid {
		e.cachedStyles = e.cachedStyles[:0]
		for _, n := range e.nodes {
			e.cachedStyles = append(e.cachedStyles, ResolveProps(e.resolveProps(n)))
		}
		e.cacheValid = true
	}
	for i, n := range e.nodes {
		s := e.cachedStyles[i]
		w, h := s.Width, s.Height
		x, y := s.Left, s.Top
		if s.LeftPct >= 0 {
			x = (screenW - w) * s.LeftPct / 100
		}
		if s.TopPct >= 0 {
			y = (screenH - h) * s.TopPct / 100
		}
		y += int32(n.Index) * (h + s.Gap)
		n.Bounds = rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	}
}

// NodeAt returns the topmost node whose bounds contain p. Call after Layout.
func (e *Engine) NodeAt(p rl.Vector2) (*Node, bool) {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.Bounds.Width > 0 && rl.CheckCollisionPointRec(p, n.Bounds) {
			return n, true
		}
	}
	return nil, false
}

// Draw lays the nodes out for the current window and draws background,
// border and text of each.
func (e *Engine) Draw() {
	e.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	for i, n := range e.nodes {
		s := e.cachedStyles[i]
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)
		if s.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, s.Background)
		}
		if s.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, s.Border)
		}
		if n.Text == "" {
			continue
		}
		tx, ty := x+s.Padding, y+s.Padding
		if e.font.Texture.ID != 0 {
			rl.DrawTextEx(e.font, n.Text, rl.NewVector2(float32(tx), float32(ty)), float32(s.FontSize), 1, s.Color)
		} else {
			rl.DrawText(n.Text, tx, ty, s.FontSize, s.Color)
		}
	}
}

// DrawRect draws a free rectangle with the style of class, e.g. the
// box-select marquee.
func (e *Engine) DrawRect(class string, r rl.Rectangle) {
	s := ResolveProps(e.resolveProps(&Node{Class: class}))
	x, y, w, h := int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)
	if s.Background.A > 0 {
		rl.DrawRectangle(x, y, w, h, s.Background)
	}
	if s.HasBorder {
		rl.DrawRectangleLines(x, y, w, h, s.Border)
	}
}

// Stylesheet returns the current stylesheet, possibly nil.
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
