// Package terminal is the in-editor console: a log area above an input bar
// that runs editor commands.
package terminal

import (
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/commands"
	"building-editor/internal/logger"
)

const (
	BarHeight = 40
	// WindowedBarOffset lifts the bar when windowed so the taskbar does not
	// cover it.
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	maxLinesOnScreen  = 14
	lineHeight        = fontSize + 4
	maxLineLen        = 200
	toggleRune        = '`'
)

var (
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
)

// Terminal toggles with the backquote key. While open it owns the keyboard:
// typed lines are echoed to the log and run through the command registry,
// either as "cmd <name> --flags" or as a bare "<name> --flags".
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font
	history  []string
	recall   int
}

// New returns a closed terminal.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen reports whether the terminal is visible and capturing keys.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Toggle opens or closes the terminal.
func (t *Terminal) Toggle() {
	t.open = !t.open
}

// SetFont sets the font used to draw the terminal. Zero texture ID uses
// raylib's default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Input returns the current input line.
func (t *Terminal) Input() string {
	return t.inputBuf
}

// Type appends text to the input line, dropping the toggle key.
func (t *Terminal) Type(s string) {
	t.inputBuf += strings.ReplaceAll(s, string(toggleRune), "")
}

// Backspace removes the last rune of the input line.
func (t *Terminal) Backspace() {
	if t.inputBuf == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(t.inputBuf)
	t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
}

// Submit echoes the input line to the log and runs it. Errors are logged.
func (t *Terminal) Submit() {
	line := strings.TrimSpace(t.inputBuf)
	t.inputBuf = ""
	if line == "" {
		return
	}
	t.log.Log(prompt + line)
	t.history = append(t.history, line)
	t.recall = len(t.history)

	ok, err := t.reg.Line(line)
	if !ok {
		err = t.reg.Execute(strings.Fields(line))
	}
	if err != nil {
		t.log.Log(err.Error())
	}
}

// Recall replaces the input line with an earlier (step -1) or later (step
// +1) submitted line.
func (t *Terminal) Recall(step int) {
	if len(t.history) == 0 {
		return
	}
	t.recall = max(0, min(len(t.history), t.recall+step))
	if t.recall == len(t.history) {
		t.inputBuf = ""
		return
	}
	t.inputBuf = t.history[t.recall]
}

// Update handles the toggle key and, while open, typing, paste, history
// recall, backspace and enter. Call once per frame before editor input.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		t.Toggle()
	}
	if !t.open {
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if rl.IsKeyPressed(rl.KeyV) && ctrl {
		t.Type(rl.GetClipboardText())
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.Type(string(rune(c)))
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace):
		t.Backspace()
	case rl.IsKeyPressed(rl.KeyUp):
		t.Recall(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		t.Recall(1)
	case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeyKpEnter):
		t.Submit()
	}
}

// Draw draws the recent log lines and the input bar at the bottom while open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := rl.GetScreenWidth()
	barY := rl.GetScreenHeight() - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	for i, line := range t.log.Tail(maxLinesOnScreen) {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		t.text(line, padding, chatY+i*lineHeight+padding, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), BarHeight, termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	t.text(prompt+t.inputBuf+"|", padding, barY+padding, rl.White)
}

func (t *Terminal) text(s string, x, y int, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), fontSize, c)
}
