// Package linear renders run progress and the command list as plain,
// chronological terminal output.
package linear

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/donk/internal/ui/output"
	"go.trai.ch/donk/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer. Everything it writes is diagnostics
// and goes to stderr; script output is not routed through it.
type Renderer struct {
	output *termenv.Output
	cwd    string

	mu sync.Mutex
}

// NewRenderer creates a Renderer writing to stderr. Config paths below cwd
// are shown relative to it.
func NewRenderer(stderr io.Writer, cwd string) *Renderer {
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{
		output: output.New(stderr),
		cwd:    cwd,
	}
}

// OnRunStart announces the command and the file it comes from.
func (r *Renderer) OnRunStart(command, configPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := fmt.Sprintf("Running command %q from %q...", command, r.displayPath(configPath))
	r.println(r.output.String(msg).Foreground(r.output.Color(string(style.Green))))
}

// OnLine echoes a line before it runs: one "+" per depth level, then the
// bracketed breadcrumb.
func (r *Renderer) OnLine(crumb domain.Breadcrumb, depth int, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.output.String(EchoPrefix(crumb, depth)).Faint()
	_, _ = r.output.WriteString(prefix.String() + " " + line + "\n")
}

// OnRunComplete reports success or failure with the elapsed time. Engine
// errors are reported by the logger instead.
func (r *Renderer) OnRunComplete(outcome domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	took := domain.FormatDuration(outcome.Elapsed)

	switch outcome.Status {
	case domain.StatusSucceeded:
		msg := fmt.Sprintf("Command %q successful, took %s", outcome.Command, took)
		r.println(r.output.String(msg).Foreground(r.output.Color(string(style.Green))))
	case domain.StatusFailed:
		msg := fmt.Sprintf("Command %q failed, took %s, exit code %d", outcome.Command, took, outcome.Code)
		if signal := signalOf(outcome); signal != "" {
			msg = fmt.Sprintf("Command %q killed with signal %s after %s", outcome.Command, signal, took)
		}
		r.println(r.output.String(msg).Foreground(r.output.Color(string(style.Yellow))))
	case domain.StatusErrored:
	}
}

// EchoPrefix renders the marker written in front of an echoed line,
// e.g. "++ [c>a]".
func EchoPrefix(crumb domain.Breadcrumb, depth int) string {
	return strings.Repeat("+", max(depth, 1)) + " [" + crumb.String() + "]"
}

func (r *Renderer) displayPath(path string) string {
	if r.cwd == "" {
		return path
	}
	rel, err := filepath.Rel(r.cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (r *Renderer) println(s termenv.Style) {
	_, _ = r.output.WriteString(s.String() + "\n")
}

func signalOf(outcome domain.Outcome) string {
	var exitErr *domain.ExitCodeError
	if !errors.As(outcome.Err, &exitErr) {
		return ""
	}
	return exitErr.Signal
}
