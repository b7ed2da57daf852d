// Package main is the entry point for donk.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/donk/cmd/donk/commands"
	"go.trai.ch/donk/internal/app"
	"go.trai.ch/donk/internal/core/domain"
	_ "go.trai.ch/donk/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*commands.CLI),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return domain.EngineErrorCode
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)
	for _, opt := range opts {
		opt(cli)
	}

	err = cli.Execute(ctx)
	code := domain.ExitCode(err)
	if err != nil && code == domain.EngineErrorCode {
		// Script failures were already reported with their exit code.
		components.Logger.Error(err)
	}
	return code
}
