// Package graphics owns the window and the frame loop.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const Title = "Building Editor"

// Options configure the window.
type Options struct {
	Width, Height int32
	Fullscreen    bool
	TargetFPS     int32
}

// DefaultOptions opens a resizable 1280x720 window at 60 FPS.
func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, TargetFPS: 60}
}

// Run opens the window and runs the loop until it is closed. Each frame
// calls update, clears to background() and calls draw. Escape does not
// close the window; the editor uses it.
func Run(opts Options, update func(), background func() rl.Color, draw func()) {
	w, h := opts.Width, opts.Height
	if opts.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	rl.InitWindow(w, h, Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(opts.TargetFPS)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(background())
		draw()
		rl.EndDrawing()
	}
}
