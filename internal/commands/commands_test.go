package commands

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-editor/internal/editor"
	"building-editor/internal/engineconfig"
	"building-editor/internal/gizmo"
	"building-editor/internal/logger"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		args []string
		ok   bool
	}{
		{"cmd spawn --type cube", []string{"spawn", "--type", "cube"}, true},
		{"cmd   undo  ", []string{"undo"}, true},
		{"cmd ", nil, true},
		{"cmd", nil, true},
		{"hello", nil, false},
		{"CMD undo", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			args, ok := Parse(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.Execute(nil), ErrMissingSubcommand)
	assert.ErrorIs(t, r.Execute([]string{"nope"}), ErrUnknownCommand)

	r.Register("echo", "echo --n 1", func(fs *flag.FlagSet) func() error {
		fs.Int("n", 0, "")
		return func() error { return nil }
	})
	assert.Error(t, r.Execute([]string{"echo", "--n", "x"}))
	assert.NoError(t, r.Execute([]string{"echo", "--n", "3"}))
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	r := NewRegistry()
	var got []string
	r.Register("say", "say --word w", func(fs *flag.FlagSet) func() error {
		w := fs.String("word", "default", "")
		return func() error {
			got = append(got, *w)
			return nil
		}
	})
	_, err := r.Line("cmd say --word hi")
	require.NoError(t, err)
	_, err = r.Line("cmd say")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "default"}, got)

	ok, err := r.Line("not a command")
	assert.False(t, ok)
	assert.NoError(t, err)
}

func newEditorRegistry(t *testing.T) (*Registry, *editor.Editor) {
	t.Helper()
	ed, err := editor.New(engineconfig.Default(), logger.Discard(), 800, 600)
	require.NoError(t, err)
	r := NewRegistry()
	RegisterEditor(r, ed)
	return r, ed
}

func run(t *testing.T, r *Registry, line string) {
	t.Helper()
	ok, err := r.Line(line)
	require.True(t, ok)
	require.NoError(t, err, line)
}

func TestEditorCommands(t *testing.T) {
	r, ed := newEditorRegistry(t)

	run(t, r, "cmd spawn --type cylinder --x 2 --z -1")
	require.Equal(t, 1, ed.Registry.Len())
	e := ed.Registry.All()[0]
	assert.Equal(t, "cylinder", e.Kind)
	assert.InDelta(t, 2, e.Transform.Position.X, 1e-6)
	assert.InDelta(t, 0.5, e.Transform.Position.Y, 1e-5)
	assert.InDelta(t, -1, e.Transform.Position.Z, 1e-6)

	run(t, r, "cmd color --hex #ff0000")
	assert.Equal(t, rl.NewColor(255, 0, 0, 255), e.Material.Color)

	run(t, r, "cmd mode --set rotate")
	assert.Equal(t, gizmo.Rotate, ed.Gizmo.Mode())
	run(t, r, "cmd plane --axes xz")
	assert.Equal(t, gizmo.PlaneXZ, ed.Gizmo.Axes())

	run(t, r, "cmd snap --on=false --distance 2")
	assert.False(t, ed.Gizmo.Config.Snapping)
	assert.InDelta(t, 0.1, ed.Gizmo.Config.TranslationSnap, 1e-6, "unset flags keep current values")
	assert.InDelta(t, 2, ed.Snap.Distance, 1e-6)

	run(t, r, "cmd weather --preset rainy --time 18 --on")
	assert.Equal(t, "rainy", ed.Scene.Env.Weather().Name)
	assert.True(t, ed.Scene.Env.Enabled)
	run(t, r, "cmd grid --visible=false")
	assert.False(t, ed.Scene.GridVisible)

	run(t, r, "cmd delete")
	assert.Equal(t, 0, ed.Registry.Len())
	run(t, r, "cmd undo")
	assert.Equal(t, 1, ed.Registry.Len())
	run(t, r, "cmd redo")
	assert.Equal(t, 0, ed.Registry.Len())
	run(t, r, "cmd help")
}

func TestEditorCommandErrors(t *testing.T) {
	r, _ := newEditorRegistry(t)
	for _, line := range []string{
		"cmd spawn --type pyramid",
		"cmd mode --set shear",
		"cmd plane --axes xw",
		"cmd delete",
		"cmd nudge --axis w",
		"cmd nudge --axis x",
		"cmd color --hex nope",
		"cmd select --id ghost",
		"cmd weather --preset foggy",
	} {
		_, err := r.Line(line)
		assert.Error(t, err, line)
	}
}

func TestExportAndLoadCommands(t *testing.T) {
	r, ed := newEditorRegistry(t)
	run(t, r, "cmd spawn --type cube")
	out := filepath.Join(t.TempDir(), "out.json")
	run(t, r, "cmd export --out "+out)
	_, err := os.Stat(out)
	require.NoError(t, err)

	run(t, r, "cmd spawn --type sphere --x 4")
	require.Equal(t, 2, ed.Registry.Len())
	run(t, r, "cmd load --src "+filepath.Join(t.TempDir(), "missing.json")+","+out)
	assert.Equal(t, 1, ed.Registry.Len())
	assert.Equal(t, out, ed.Source())
}
