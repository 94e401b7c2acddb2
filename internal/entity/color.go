package entity

import (
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ParseColor parses "#rrggbb" or "#rrggbbaa" (the leading # is optional).
func ParseColor(s string) (rl.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return rl.Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// HexColor formats c as "#rrggbb".
func HexColor(c rl.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
