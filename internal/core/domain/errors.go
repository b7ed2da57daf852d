package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrConfigNotFound is returned when no config file was given and none of the default names exist.
	ErrConfigNotFound = zerr.New("no config file found")

	// ErrConfigInvalid is returned when the config file has a syntax or schema violation.
	ErrConfigInvalid = zerr.New("invalid config file")

	// ErrLockBusy is returned when the run marker already exists in the working directory.
	ErrLockBusy = zerr.New("another run is in progress")

	// ErrCommandNotFound is returned when the requested command is not defined.
	ErrCommandNotFound = zerr.New("command not found")

	// ErrSubcommandNotFound is returned when a script line references an undefined command.
	ErrSubcommandNotFound = zerr.New("sub-command not found")

	// ErrInlineRecursion is returned when a command is inlined while it is still open on the inline chain.
	ErrInlineRecursion = zerr.New("inline recursion")

	// ErrInlineTargetNotSmart is returned when an inline reference points at a command with a custom executor.
	ErrInlineTargetNotSmart = zerr.New("inline target must run under the default shell")

	// ErrMalformedReference is returned when a reference marker is not followed by a command name.
	ErrMalformedReference = zerr.New("malformed command reference")

	// ErrShellSyntax is returned when a script line cannot be parsed by the shell.
	ErrShellSyntax = zerr.New("shell syntax error")

	// ErrNoCommands is returned when a config file defines no commands.
	ErrNoCommands = zerr.New("no commands defined")

	// ErrRecursionLimit is returned when named references nest deeper than MaxDepth.
	ErrRecursionLimit = zerr.New("recursion limit reached")
)

// ExitCodeError reports a script line or interpreter process that finished
// with a non-zero status. It is the only error whose code becomes the exit
// status of donk itself.
type ExitCodeError struct {
	Code   int
	Signal string
}

// SignalExitCode is the status reported for a process stopped by a signal.
const SignalExitCode = 2

// NewExitCodeError returns an ExitCodeError for the given status.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

// NewSignalError returns the ExitCodeError of a process stopped by signal.
func NewSignalError(signal string) *ExitCodeError {
	return &ExitCodeError{Code: SignalExitCode, Signal: signal}
}

func (e *ExitCodeError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("killed by signal %s", e.Signal)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}
