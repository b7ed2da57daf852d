package domain

import (
	"maps"
	"slices"
	"strconv"
)

// Environment variables published to every spawned process.
const (
	EnvCommand    = "DONK_COMMAND"
	EnvConfigFile = "DONK_CONFIG_FILE"
	EnvDepth      = "DONK_DEPTH"
	EnvKeep       = "DONK_KEEP"
)

// MaxDepth is the deepest frame a run may enter, counting named references
// and nested donk processes alike.
const MaxDepth = 64

// ExecutionContext is the state of one engine call frame. A frame owns its
// context exclusively; named references get a fresh child context while
// inline splices keep using the enclosing one.
type ExecutionContext struct {
	Breadcrumb Breadcrumb
	Depth      int
	ConfigPath string
	Keep       bool

	base   map[string]string
	inline map[string]struct{}
}

// NewExecutionContext creates the top-level context of a run.
// base holds the config-level environment shared by all frames.
func NewExecutionContext(crumb Breadcrumb, depth int, configPath string, keep bool, base map[string]string) *ExecutionContext {
	return &ExecutionContext{
		Breadcrumb: crumb,
		Depth:      depth,
		ConfigPath: configPath,
		Keep:       keep,
		base:       maps.Clone(base),
		inline:     make(map[string]struct{}),
	}
}

// Child returns the context of a frame entered through a named reference:
// the breadcrumb grows, depth increases and the inline chain starts empty.
func (c *ExecutionContext) Child(name string) *ExecutionContext {
	return &ExecutionContext{
		Breadcrumb: c.Breadcrumb.Named(name),
		Depth:      c.Depth + 1,
		ConfigPath: c.ConfigPath,
		Keep:       c.Keep,
		base:       c.base,
		inline:     make(map[string]struct{}),
	}
}

// InlineOpen reports whether name is currently being spliced in.
func (c *ExecutionContext) InlineOpen(name string) bool {
	_, ok := c.inline[name]
	return ok
}

// EnterInline marks name as open on the inline chain.
func (c *ExecutionContext) EnterInline(name string) {
	c.inline[name] = struct{}{}
}

// LeaveInline closes name on the inline chain.
func (c *ExecutionContext) LeaveInline(name string) {
	delete(c.inline, name)
}

// Overlay returns the variables visible to processes spawned by this frame.
// extra holds command-level values; they override the config-level base,
// and the engine state variables override both.
func (c *ExecutionContext) Overlay(extra map[string]string) map[string]string {
	overlay := make(map[string]string, len(c.base)+len(extra)+4)
	maps.Copy(overlay, c.base)
	maps.Copy(overlay, extra)
	overlay[EnvCommand] = c.Breadcrumb.String()
	overlay[EnvConfigFile] = c.ConfigPath
	overlay[EnvDepth] = strconv.Itoa(c.Depth)
	overlay[EnvKeep] = keepFlag(c.Keep)
	return overlay
}

// Environ renders the overlay as sorted KEY=VALUE pairs.
func (c *ExecutionContext) Environ(extra map[string]string) []string {
	return Environ(c.Overlay(extra))
}

// Environ renders a variable map as sorted KEY=VALUE pairs.
func Environ(vars map[string]string) []string {
	keys := slices.Sorted(maps.Keys(vars))
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}

func keepFlag(keep bool) string {
	if keep {
		return "1"
	}
	return "0"
}
