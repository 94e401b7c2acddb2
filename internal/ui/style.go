package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rule is one CSS rule: a selector and raw property values.
type Rule struct {
	Selector string
	Props    map[string]string
}

// Stylesheet is a list of rules; later rules win.
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for layout and drawing.
// LeftPct/TopPct are 0-100 for percentage positioning, -1 when unset.
type ComputedStyle struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	Gap        int32
	FontSize   int32
}

// DefaultComputedStyle is transparent with white 20px text and no border.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:    rl.White,
		Border:   rl.Black,
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: defaultFontSize,
	}
}

// ParseHexColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (rl.Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return rl.Black, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return rl.Black, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Black, false
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), true
}

// ParsePx parses a number with an optional "px" suffix.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" with N in [0,100].
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from merged properties.
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		switch k {
		case "background":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			setPx(&out.Width, v)
		case "height":
			setPx(&out.Height, v)
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else {
				setPx(&out.Left, v)
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else {
				setPx(&out.Top, v)
			}
		case "padding":
			setPx(&out.Padding, v)
		case "gap":
			setPx(&out.Gap, v)
		case "font-size":
			setPx(&out.FontSize, v)
		}
	}
	return out
}

func setPx(dst *int32, v string) {
	if n, ok := ParsePx(v); ok && n >= 0 {
		*dst = n
	}
}
