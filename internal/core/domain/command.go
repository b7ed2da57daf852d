package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// SmartExecutor is the explicit spelling of "no executor override".
const SmartExecutor = "bash-smart"

// CommandSpec is a named command as declared in the config file.
// It is built once at start-up and never mutated afterwards.
type CommandSpec struct {
	Name        string
	Run         []string
	Description string
	WorkingDir  string
	Executor    string
	Env         map[string]string
	Args        []string
}

// Smart reports whether the command runs under the default shell.
// Only smart commands are split into line entries and can be inlined.
func (c *CommandSpec) Smart() bool {
	return c.Executor == "" || c.Executor == SmartExecutor
}

// LineCount returns the number of script lines.
func (c *CommandSpec) LineCount() int {
	return len(c.Run)
}

// Commands is the insertion-ordered mapping of command names to specs,
// together with the config-level settings that apply to all of them.
type Commands struct {
	names []string
	specs map[string]*CommandSpec

	// Env is exported to every spawned process.
	Env map[string]string
	// Default names the command run when none is given on the command line.
	Default string
}

// NewCommands creates an empty Commands mapping.
func NewCommands() *Commands {
	return &Commands{
		specs: make(map[string]*CommandSpec),
		Env:   make(map[string]string),
	}
}

// Add appends a command. Names must be unique.
func (c *Commands) Add(spec *CommandSpec) error {
	if _, exists := c.specs[spec.Name]; exists {
		return zerr.With(zerr.Wrap(ErrConfigInvalid, "duplicate command"), "command", spec.Name)
	}
	c.names = append(c.names, spec.Name)
	c.specs[spec.Name] = spec
	return nil
}

// Get looks a command up by exact name.
func (c *Commands) Get(name string) (*CommandSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

// Names returns the command names in config order.
func (c *Commands) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of commands.
func (c *Commands) Len() int {
	return len(c.names)
}

// All iterates over the commands in config order.
func (c *Commands) All() iter.Seq2[string, *CommandSpec] {
	return func(yield func(string, *CommandSpec) bool) {
		for _, name := range c.names {
			if !yield(name, c.specs[name]) {
				return
			}
		}
	}
}
