// Package debug draws runtime overlays: FPS, heap and scene counts.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval refreshes the text every N frames to limit allocations.
	updateInterval = 30
)

// Stats are the scene counts shown by the stats overlay.
type Stats struct {
	Entities int
	Bodies   int
	Awake    int
	Undo     int
	Redo     int
}

// Debug holds the overlay switches. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool

	font       rl.Font
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a Debug with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the overlay font. Zero texture ID uses raylib's default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Lines formats the enabled overlays.
func (d *Debug) Lines(fps int32, heap uint64, s Stats) []string {
	var out []string
	if d.ShowFPS {
		out = append(out, fmt.Sprintf("FPS: %d", fps))
	}
	if d.ShowMemAlloc {
		out = append(out, fmt.Sprintf("Mem: %.2f MiB", float64(heap)/(1024*1024)))
	}
	if d.ShowStats {
		out = append(out,
			fmt.Sprintf("Entities: %d  Bodies: %d (%d awake)", s.Entities, s.Bodies, s.Awake),
			fmt.Sprintf("Undo: %d  Redo: %d", s.Undo, s.Redo),
		)
	}
	return out
}

// Draw renders the enabled overlays right-aligned at the top. stats is only
// called when the text is refreshed.
func (d *Debug) Draw(stats func() Stats) {
	if !d.ShowFPS && !d.ShowMemAlloc && !d.ShowStats {
		return
	}
	d.frameCount++
	if d.frameCount%updateInterval == 1 || d.lines == nil {
		var s Stats
		if d.ShowStats && stats != nil {
			s = stats()
		}
		if d.ShowMemAlloc {
			runtime.ReadMemStats(&d.memStats)
		}
		d.lines = d.Lines(rl.GetFPS(), d.memStats.Alloc, s)
	}

	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}
