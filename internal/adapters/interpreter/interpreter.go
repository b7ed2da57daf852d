// Package interpreter runs command bodies under a custom executor such as
// python or node. The body is written to a temporary script file that is
// passed to the executor as its first argument.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/shell"
)

var _ ports.Interpreter = (*Interpreter)(nil)

// Interpreter implements ports.Interpreter using os/exec.
type Interpreter struct {
	logger ports.Logger
}

// NewInterpreter creates a new Interpreter.
func NewInterpreter(logger ports.Logger) *Interpreter {
	return &Interpreter{
		logger: logger,
	}
}

// Run writes the script body to a temporary file in the working directory
// and runs "<executor...> <file> <args...>". The file is removed afterwards
// unless DONK_KEEP=1 is part of the script environment.
func (i *Interpreter) Run(ctx context.Context, script ports.Script) error {
	argv, err := shell.Fields(script.Executor, nil)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid executor"), "executor", script.Executor)
	}
	if len(argv) == 0 {
		return zerr.With(zerr.New("empty executor"), "command", script.Command)
	}

	path, err := i.writeScript(script)
	if err != nil {
		return err
	}
	if keep(script.Env) {
		i.logger.Info(fmt.Sprintf("keeping temporary script %s", path))
	} else {
		defer func() { _ = os.Remove(path) }()
	}

	cmdEnv := resolveEnvironment(os.Environ(), script.Env)

	name := argv[0]
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	args := append(argv[1:], path)
	args = append(args, script.Args...)

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = script.Dir
	cmd.Env = cmdEnv
	cmd.Stdin = script.Stdio.Stdin
	cmd.Stdout = script.Stdio.Stdout
	cmd.Stderr = script.Stdio.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return zerr.With(zerr.Wrap(err, "failed to start interpreter"), "executor", script.Executor)
		}
		if ctx.Err() != nil {
			return domain.NewSignalError("interrupt")
		}
		return exitError(exitErr)
	}
	return nil
}

func (i *Interpreter) writeScript(script ports.Script) (string, error) {
	f, err := os.CreateTemp(script.Dir, domain.TempScriptPattern)
	if err != nil {
		return "", zerr.Wrap(err, "failed to create temporary script")
	}

	content := header(script) + script.Body + "\n"
	_, werr := f.WriteString(content)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(f.Name())
		return "", zerr.With(zerr.Wrap(err, "failed to write temporary script"), "path", f.Name())
	}
	return f.Name(), nil
}

// header is a comment block identifying the file, written in the comment
// syntax of the executor.
func header(script ports.Script) string {
	comment := "#"
	if strings.HasPrefix(filepath.Base(script.Executor), "node") {
		comment = "//"
	}
	return fmt.Sprintf("%s temporary file generated by donk to run the command %q with %q\n",
		comment, script.Command, script.Executor)
}

func exitError(err *exec.ExitError) error {
	if status, ok := err.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return domain.NewSignalError(status.Signal().String())
	}
	return domain.NewExitCodeError(err.ExitCode())
}

func keep(env []string) bool {
	for _, entry := range env {
		if entry == domain.EnvKeep+"=1" {
			return true
		}
	}
	return false
}

// resolveEnvironment layers the script variables over the system environment.
func resolveEnvironment(sysEnv, scriptEnv []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(scriptEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for _, entry := range scriptEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	return domain.Environ(envMap)
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env rather than of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
