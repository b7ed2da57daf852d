package ports

import "context"

// Script is a command body handed to an external interpreter as one unit.
type Script struct {
	// Command is the name of the command being run, used for diagnostics.
	Command string
	// Executor is the interpreter invocation, e.g. "python3 -u".
	Executor string
	// Body is the joined script text.
	Body string
	// Dir is the absolute working directory.
	Dir string
	// Env holds the variables in "KEY=VALUE" format layered over the process environment.
	Env []string
	// Args are passed after the script path.
	Args []string
	// Stdio are the streams of the interpreter process.
	Stdio Stdio
}

// Interpreter runs command bodies under a custom executor.
//
//go:generate go run go.uber.org/mock/mockgen -source=interpreter.go -destination=mocks/mock_interpreter.go -package=mocks
type Interpreter interface {
	// Run executes the script and blocks until the interpreter exits.
	// A non-zero status is reported as a *domain.ExitCodeError.
	Run(ctx context.Context, script Script) error
}
