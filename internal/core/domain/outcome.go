package domain

import (
	"errors"
	"fmt"
	"time"
)

// Status is the terminal state of a run.
type Status uint8

const (
	// StatusSucceeded means every line completed with exit status zero.
	StatusSucceeded Status = iota
	// StatusFailed means a spawned process exited non-zero.
	StatusFailed
	// StatusErrored means the engine itself aborted the run.
	StatusErrored
)

// Outcome is the result of running a command. It is reported once and
// never persisted.
type Outcome struct {
	Command string
	Status  Status
	Elapsed time.Duration
	Code    int
	Err     error
}

// Succeeded builds a success outcome.
func Succeeded(command string, elapsed time.Duration) Outcome {
	return Outcome{Command: command, Status: StatusSucceeded, Elapsed: elapsed}
}

// OutcomeFromError classifies err: an ExitCodeError anywhere in the chain
// is a failure carrying its code, everything else is an engine error.
func OutcomeFromError(command string, elapsed time.Duration, err error) Outcome {
	if err == nil {
		return Succeeded(command, elapsed)
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return Outcome{Command: command, Status: StatusFailed, Elapsed: elapsed, Code: exitErr.Code, Err: err}
	}
	return Outcome{Command: command, Status: StatusErrored, Elapsed: elapsed, Code: EngineErrorCode, Err: err}
}

// EngineErrorCode is the exit status for every engine-level error.
const EngineErrorCode = 100

// ExitCode maps an error returned by the application to a process exit
// status: 0 for nil, the child's code for script failures, EngineErrorCode
// otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return EngineErrorCode
}

// FormatDuration renders d the way run summaries show it:
// sub-10ms with microsecond precision, sub-second in whole milliseconds,
// below 100s with millisecond precision, whole seconds after that.
func FormatDuration(d time.Duration) string {
	switch {
	case d < 10*time.Millisecond:
		return fmt.Sprintf("%0.3fms", float64(d.Microseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 100*time.Second:
		return fmt.Sprintf("%0.3fs", float64(d.Milliseconds())/1000)
	default:
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
}
