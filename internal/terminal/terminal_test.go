package terminal

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-editor/internal/commands"
	"building-editor/internal/logger"
)

func newTerminal(t *testing.T) (*Terminal, *logger.Logger, *[]string) {
	t.Helper()
	log := logger.Discard()
	reg := commands.NewRegistry()
	var got []string
	reg.Register("echo", "echo --text hi", func(fs *flag.FlagSet) func() error {
		text := fs.String("text", "", "text")
		return func() error {
			got = append(got, *text)
			return nil
		}
	})
	return New(log, reg), log, &got
}

func TestSubmitRunsPrefixedAndBareCommands(t *testing.T) {
	term, log, got := newTerminal(t)

	for _, line := range []string{"cmd echo --text a", "echo --text b", "  "} {
		term.Type(line)
		term.Submit()
	}

	assert.Equal(t, []string{"a", "b"}, *got)
	assert.Empty(t, term.Input())
	require.Len(t, log.Lines(), 2)
	assert.True(t, strings.HasSuffix(log.Lines()[0], "> cmd echo --text a"))
}

func TestSubmitLogsErrors(t *testing.T) {
	term, log, _ := newTerminal(t)

	term.Type("fly --to moon")
	term.Submit()

	lines := log.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "unknown command: fly")
}

func TestTypeDropsToggleKey(t *testing.T) {
	term, _, _ := newTerminal(t)
	term.Type("`ech`o")
	assert.Equal(t, "echo", term.Input())

	term.Type("é")
	term.Backspace()
	assert.Equal(t, "echo", term.Input())
}

func TestRecall(t *testing.T) {
	term, _, _ := newTerminal(t)
	for _, line := range []string{"echo --text 1", "echo --text 2"} {
		term.Type(line)
		term.Submit()
	}

	term.Recall(-1)
	assert.Equal(t, "echo --text 2", term.Input())
	term.Recall(-1)
	term.Recall(-1)
	assert.Equal(t, "echo --text 1", term.Input())
	term.Recall(1)
	term.Recall(1)
	assert.Empty(t, term.Input())
}

func TestToggle(t *testing.T) {
	term, _, _ := newTerminal(t)
	assert.False(t, term.IsOpen())
	term.Toggle()
	assert.True(t, term.IsOpen())
}
