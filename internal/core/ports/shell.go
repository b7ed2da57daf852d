// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Stdio bundles the standard streams handed to spawned processes.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// SessionOptions configures a shell session.
type SessionOptions struct {
	// Dir is the absolute working directory of the session.
	Dir string
	// Env holds the variables in "KEY=VALUE" format layered over the process environment.
	Env []string
	// Args are the positional parameters ($1..$n).
	Args []string
	// Stdio are the streams of commands run in the session.
	Stdio Stdio
}

// Shell opens sessions of the default shell.
//
//go:generate go run go.uber.org/mock/mockgen -source=shell.go -destination=mocks/mock_shell.go -package=mocks
type Shell interface {
	// Open starts a new session with its own variables and working directory.
	Open(ctx context.Context, opts SessionOptions) (Session, error)
}

// Session is one live shell. State such as variable assignments or the
// working directory persists from one Run call to the next.
type Session interface {
	// Run executes one script line and blocks until every process it
	// spawned has exited. A non-zero status is reported as a
	// *domain.ExitCodeError.
	Run(ctx context.Context, line string) error

	// Complete reports whether text forms whole statements, as opposed to
	// e.g. a loop or quote still waiting for its closing line. Text with a
	// syntax error counts as complete so that running it reports the error.
	Complete(text string) bool

	// Exited reports whether a line ended the shell, e.g. with "exit 0".
	// No further lines run in an exited session.
	Exited() bool

	// Close releases the session.
	Close() error
}
