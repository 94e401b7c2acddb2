package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the editor log file, relative to the working directory (project root when run via go run ./cmd/editor).
const DefaultPath = "logs/editor.txt"

// Logger stores timestamped diagnostic lines in memory and appends them to a file on disk.
// The console reads Lines to show recent output.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger writing to path and ensures its directory exists. An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0)}
}

// Discard returns a memory-only logger.
func Discard() *Logger {
	return New("")
}

// Log appends a line. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	if l == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Infof logs a formatted INFO line.
func (l *Logger) Infof(format string, args ...any) {
	l.Log("INFO " + fmt.Sprintf(format, args...))
}

// Warnf logs a formatted WARN line.
func (l *Logger) Warnf(format string, args ...any) {
	l.Log("WARN " + fmt.Sprintf(format, args...))
}

// Errorf logs a formatted ERROR line.
func (l *Logger) Errorf(format string, args ...any) {
	l.Log("ERROR " + fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the last n lines.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}
