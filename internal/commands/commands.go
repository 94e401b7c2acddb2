// Package commands parses console lines of the form "cmd <name> --flags" and
// runs them against registered handlers.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

var (
	// ErrMissingSubcommand is returned for a bare "cmd".
	ErrMissingSubcommand = errors.New("missing subcommand")
	// ErrUnknownCommand is returned for names that were never registered.
	ErrUnknownCommand = errors.New("unknown command")
)

// Build defines a command's flags on fs and returns the function that runs
// it once fs has been parsed.
type Build func(fs *flag.FlagSet) func() error

// Command is a registered subcommand.
type Command struct {
	Name  string
	Usage string
	build Build
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first token after "cmd". build is
// called with a fresh FlagSet on every execution so flag values never leak
// from one run to the next.
func (r *Registry) Register(name, usage string, build Build) {
	r.cmds[name] = &Command{Name: name, Usage: usage, build: build}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Usage returns the one-line help of a command.
func (r *Registry) Usage(name string) (string, bool) {
	c, ok := r.cmds[name]
	if !ok {
		return "", false
	}
	return c.Usage, true
}

// Parse interprets line as a console line. If line starts with "cmd "
// (case-sensitive), the rest is tokenized by spaces and returned with ok true.
func Parse(line string) (args []string, ok bool) {
	if line == strings.TrimSpace(prefix) {
		return nil, true
	}
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flags.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return ErrMissingSubcommand
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	run := cmd.build(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return run()
}

// Line parses and executes a console line. ok is false when line is not a
// command.
func (r *Registry) Line(line string) (ok bool, err error) {
	args, ok := Parse(line)
	if !ok {
		return false, nil
	}
	return true, r.Execute(args)
}
