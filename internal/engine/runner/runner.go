// Package runner implements the command execution engine.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/donk/internal/engine/suggest"
	"go.trai.ch/zerr"
)

// Request describes one top-level invocation.
type Request struct {
	Commands *domain.Commands
	// Name is the command to run.
	Name string
	// ConfigPath is the absolute path of the config file.
	ConfigPath string
	// WorkDir is where the run marker is created and where commands without
	// a working_dir override run.
	WorkDir string
	// Args are the extra command-line arguments.
	Args []string
	Keep bool

	// Parent and ParentDepth describe the enclosing donk run when this
	// process was itself started by a command line.
	Parent      domain.Breadcrumb
	ParentDepth int

	Stdio ports.Stdio
}

// Nested reports whether the request runs inside another donk run.
func (r *Request) Nested() bool {
	return r.ParentDepth > 0
}

// Engine interprets commands: smart commands line by line in shell
// sessions, the rest as whole scripts under their executor.
type Engine struct {
	shell       ports.Shell
	interpreter ports.Interpreter
	locker      ports.Locker
}

// NewEngine creates a new Engine.
func NewEngine(shell ports.Shell, interpreter ports.Interpreter, locker ports.Locker) *Engine {
	return &Engine{
		shell:       shell,
		interpreter: interpreter,
		locker:      locker,
	}
}

// invocation is the state shared by every frame of one Execute call.
type invocation struct {
	req      *Request
	renderer ports.Renderer
}

// Execute runs req.Name. The returned error is nil iff the outcome
// succeeded; a failing script line yields a *domain.ExitCodeError.
func (e *Engine) Execute(ctx context.Context, req *Request, renderer ports.Renderer) (domain.Outcome, error) {
	spec, ok := req.Commands.Get(req.Name)
	if !ok {
		err := notFound(req.Commands, req.Name)
		return domain.OutcomeFromError(req.Name, 0, err), err
	}

	if depth := req.ParentDepth + 1; depth > domain.MaxDepth {
		err := recursionLimit(req.Name, depth)
		return domain.OutcomeFromError(req.Name, 0, err), err
	}

	var lock ports.Lock
	if !req.Nested() {
		var err error
		lock, err = e.locker.Acquire(req.WorkDir, req.Name)
		if err != nil {
			return domain.OutcomeFromError(req.Name, 0, err), err
		}
		defer func() { _ = lock.Release() }()
	}

	renderer.OnRunStart(req.Name, req.ConfigPath)

	crumb := domain.NewBreadcrumb(req.Name)
	if !req.Parent.IsZero() {
		crumb = req.Parent.Named(req.Name)
	}
	ec := domain.NewExecutionContext(crumb, req.ParentDepth+1, req.ConfigPath, req.Keep, req.Commands.Env)

	r := &invocation{req: req, renderer: renderer}
	start := time.Now()
	err := e.run(ctx, r, ec, spec, append(append([]string(nil), spec.Args...), req.Args...), req.Args)
	elapsed := time.Since(start)

	if lock != nil {
		if relErr := lock.Release(); relErr != nil && err == nil {
			err = zerr.With(zerr.Wrap(relErr, "failed to remove run marker"), "path", lock.Path())
		}
	}

	outcome := domain.OutcomeFromError(req.Name, elapsed, err)
	renderer.OnRunComplete(outcome)
	return outcome, err
}

// run executes spec in a new frame. cliArgs is empty except for the
// top-level frame.
func (e *Engine) run(
	ctx context.Context,
	r *invocation,
	ec *domain.ExecutionContext,
	spec *domain.CommandSpec,
	args, cliArgs []string,
) error {
	dir := r.dir(spec)
	env := ec.Environ(spec.Env)

	if !spec.Smart() {
		return e.interpreter.Run(ctx, ports.Script{
			Command:  ec.Breadcrumb.String(),
			Executor: spec.Executor,
			Body:     strings.Join(spec.Run, "\n"),
			Dir:      dir,
			Env:      env,
			Args:     args,
			Stdio:    r.req.Stdio,
		})
	}

	session, err := e.shell.Open(ctx, ports.SessionOptions{
		Dir:   dir,
		Env:   env,
		Args:  args,
		Stdio: r.req.Stdio,
	})
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	return e.runLines(ctx, r, ec, ec.Breadcrumb, forwardArgs(spec.Run, cliArgs), session)
}

// runLines dispatches lines in order in session. crumb is the display
// breadcrumb, which differs from the frame's own inside inline splices.
// A shell line that leaves a statement open, such as the head of a loop,
// is joined with the following lines until the statement is complete.
func (e *Engine) runLines(
	ctx context.Context,
	r *invocation,
	ec *domain.ExecutionContext,
	crumb domain.Breadcrumb,
	lines []string,
	session ports.Session,
) error {
	var open []string
	quiet := false

	for _, raw := range lines {
		if session.Exited() {
			return nil
		}
		if ctx.Err() != nil {
			return domain.NewSignalError("interrupt")
		}

		// Lines continuing an open statement are shell text, markers included.
		text := raw
		if len(open) == 0 {
			entry, err := domain.ParseLine(raw)
			if err != nil {
				return zerr.With(err, "command", crumb.String())
			}

			switch entry.Kind {
			case domain.LineNamedRef:
				if err := e.named(ctx, r, ec, crumb, entry.Text); err != nil {
					return err
				}
				continue
			case domain.LineInlineRef:
				target, err := r.resolve(entry.Text, crumb)
				if err != nil {
					return err
				}
				if err := e.inline(ctx, r, ec, crumb, target, session); err != nil {
					return err
				}
				continue
			case domain.LinePlain, domain.LineQuiet:
			}
			text, quiet = entry.Text, entry.Kind == domain.LineQuiet
		}

		if !quiet {
			r.renderer.OnLine(crumb, ec.Depth, text)
		}
		open = append(open, text)
		stmt := strings.Join(open, "\n")
		if !session.Complete(stmt) {
			continue
		}
		open = nil
		if err := session.Run(ctx, stmt); err != nil {
			return err
		}
	}

	if len(open) > 0 && !session.Exited() {
		// Running the unfinished statement reports the syntax error.
		return session.Run(ctx, strings.Join(open, "\n"))
	}
	return nil
}

// named runs the referenced command in a child frame with its own session.
func (e *Engine) named(
	ctx context.Context,
	r *invocation,
	ec *domain.ExecutionContext,
	crumb domain.Breadcrumb,
	name string,
) error {
	target, err := r.resolve(name, crumb)
	if err != nil {
		return err
	}
	child := ec.Child(target.Name)
	if child.Depth > domain.MaxDepth {
		return recursionLimit(target.Name, child.Depth)
	}
	return e.run(ctx, r, child, target, target.Args, nil)
}

// inline splices target into the running session of the frame.
func (e *Engine) inline(
	ctx context.Context,
	r *invocation,
	ec *domain.ExecutionContext,
	crumb domain.Breadcrumb,
	target *domain.CommandSpec,
	session ports.Session,
) error {
	chain := crumb.Inline(target.Name)
	if ec.InlineOpen(target.Name) {
		return zerr.With(
			zerr.Wrap(domain.ErrInlineRecursion, fmt.Sprintf("%q is already being inlined", target.Name)),
			"command", chain.String(),
		)
	}
	if !target.Smart() {
		return zerr.With(
			zerr.Wrap(domain.ErrInlineTargetNotSmart, fmt.Sprintf("%q runs under %q", target.Name, target.Executor)),
			"command", chain.String(),
		)
	}

	ec.EnterInline(target.Name)
	defer ec.LeaveInline(target.Name)

	return e.runLines(ctx, r, ec, chain, target.Run, session)
}

func (r *invocation) resolve(name string, crumb domain.Breadcrumb) (*domain.CommandSpec, error) {
	spec, ok := r.req.Commands.Get(name)
	if !ok {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrSubcommandNotFound, fmt.Sprintf("%q is not defined", name)),
			"command", crumb.String(),
		)
	}
	return spec, nil
}

// dir returns the working directory of spec. Overrides are relative to
// the config file.
func (r *invocation) dir(spec *domain.CommandSpec) string {
	if spec.WorkingDir == "" {
		return r.req.WorkDir
	}
	if filepath.IsAbs(spec.WorkingDir) {
		return spec.WorkingDir
	}
	return filepath.Join(filepath.Dir(r.req.ConfigPath), spec.WorkingDir)
}

// forwardArgs appends "$@" to a single plain line that does not use
// positional parameters itself, so extra arguments reach the program.
func forwardArgs(lines, cliArgs []string) []string {
	if len(cliArgs) == 0 || len(lines) != 1 || strings.Contains(lines[0], "$") {
		return lines
	}
	entry, err := domain.ParseLine(lines[0])
	if err != nil || entry.Kind != domain.LinePlain {
		return lines
	}
	return []string{lines[0] + ` "$@"`}
}

func recursionLimit(name string, depth int) error {
	err := zerr.Wrap(domain.ErrRecursionLimit, fmt.Sprintf("named references nest deeper than %d levels", domain.MaxDepth))
	return zerr.With(zerr.With(err, "command", name), "depth", depth)
}

func notFound(cmds *domain.Commands, name string) error {
	err := zerr.With(zerr.Wrap(domain.ErrCommandNotFound, fmt.Sprintf("%q is not defined", name)), "command", name)
	if suggestion, ok := suggest.Closest(name, cmds.Names()); ok {
		err = zerr.With(err, "suggestion", suggestion)
	}
	return err
}
