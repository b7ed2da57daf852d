// Package shell runs command lines in an in-process POSIX shell. One session
// keeps variables, functions and the working directory alive between lines.
package shell

import (
	"context"
	"errors"
	"os"
	"strings"

	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

var (
	_ ports.Shell   = (*Shell)(nil)
	_ ports.Session = (*Session)(nil)
)

// Shell implements ports.Shell using mvdan.cc/sh.
type Shell struct{}

// NewShell creates a new Shell.
func NewShell() *Shell {
	return &Shell{}
}

// Open starts a session with errexit enabled and opts.Args as the
// positional parameters.
func (s *Shell) Open(_ context.Context, opts ports.SessionOptions) (ports.Session, error) {
	env := expand.ListEnviron(append(os.Environ(), opts.Env...)...)

	runnerOpts := []interp.RunnerOption{
		interp.StdIO(opts.Stdio.Stdin, opts.Stdio.Stdout, opts.Stdio.Stderr),
		interp.Env(env),
		interp.Params(append([]string{"-e", "--"}, opts.Args...)...),
	}
	if opts.Dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(opts.Dir))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start shell"), "dir", opts.Dir)
	}
	return &Session{
		runner: runner,
		parser: syntax.NewParser(syntax.Variant(syntax.LangBash)),
	}, nil
}

// Session is a live shell. It is not safe for concurrent use.
type Session struct {
	runner *interp.Runner
	parser *syntax.Parser
}

// Run parses and executes one line.
func (s *Session) Run(ctx context.Context, line string) error {
	file, err := s.parser.Parse(strings.NewReader(line), "")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrShellSyntax, err.Error()), "line", line)
	}

	err = s.runner.Run(ctx, file)
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return domain.NewSignalError("interrupt")
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return domain.NewExitCodeError(int(status))
	}
	return zerr.With(zerr.Wrap(err, "failed to run line"), "line", line)
}

// Complete reports whether text parses without running out of input.
func (s *Session) Complete(text string) bool {
	_, err := s.parser.Parse(strings.NewReader(text), "")
	return !syntax.IsIncomplete(err)
}

// Exited reports whether the shell was ended by "exit" or errexit.
func (s *Session) Exited() bool {
	return s.runner.Exited()
}

// Close releases the session.
func (s *Session) Close() error {
	return nil
}
