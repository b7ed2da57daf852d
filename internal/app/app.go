// Package app implements the application layer for donk.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/donk/internal/adapters/linear"
	"go.trai.ch/donk/internal/adapters/watcher"
	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/donk/internal/engine/runner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatcherFactory creates the file watcher used in watch mode.
type WatcherFactory func() (ports.Watcher, error)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	engine       *runner.Engine
	logger       ports.Logger
	newWatcher   WatcherFactory
	debounce     time.Duration
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, engine *runner.Engine, log ports.Logger, newWatcher WatcherFactory) *App {
	return &App{
		configLoader: loader,
		engine:       engine,
		logger:       log,
		newWatcher:   newWatcher,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets the quiet period of watch mode.
// This is primarily used for testing.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// Nesting describes the donk run this process was started from, as read
// back from the variables the engine publishes to spawned processes.
type Nesting struct {
	Parent domain.Breadcrumb
	Depth  int
	Keep   bool
}

// NestingFromEnv reads the nesting state with getenv, usually os.Getenv.
// A missing or malformed depth means the process is not nested.
func NestingFromEnv(getenv func(string) string) Nesting {
	depth, err := strconv.Atoi(getenv(domain.EnvDepth))
	if err != nil || depth < 0 {
		depth = 0
	}
	n := Nesting{
		Depth: depth,
		Keep:  getenv(domain.EnvKeep) == "1",
	}
	if depth > 0 {
		n.Parent = domain.ParseBreadcrumb(getenv(domain.EnvCommand))
	}
	return n
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigFile is the explicit config path; empty means discovery.
	ConfigFile string
	// Command is the command to run; empty means the default or the list view.
	Command string
	Args    []string
	Keep    bool
	// Watch, when set, re-runs the command whenever files below it change.
	Watch string
	// Dir is the working directory of the invocation.
	Dir     string
	Nesting Nesting
	Stdio   ports.Stdio
}

// Run loads the config and runs the selected command. Without a command
// the configured default runs, or the command list is written to stdout.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	path, err := a.configLoader.Discover(opts.Dir, opts.ConfigFile)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	cmds, err := a.configLoader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	name := opts.Command
	if name == "" {
		name = cmds.Default
	}
	if name == "" {
		return linear.WriteList(opts.Stdio.Stdout, cmds)
	}

	req := &runner.Request{
		Commands:    cmds,
		Name:        name,
		ConfigPath:  path,
		WorkDir:     opts.Dir,
		Args:        opts.Args,
		Keep:        opts.Keep || opts.Nesting.Keep,
		Parent:      opts.Nesting.Parent,
		ParentDepth: opts.Nesting.Depth,
		Stdio:       opts.Stdio,
	}
	renderer := linear.NewRenderer(opts.Stdio.Stderr, opts.Dir)

	if opts.Watch == "" {
		_, err := a.engine.Execute(ctx, req, renderer)
		return err
	}

	if _, ok := cmds.Get(name); !ok {
		// Resolve once up front so a typo fails instead of watching forever.
		_, err := a.engine.Execute(ctx, req, renderer)
		return err
	}

	root := opts.Watch
	if !filepath.IsAbs(root) {
		root = filepath.Join(opts.Dir, root)
	}
	return a.watch(ctx, req, renderer, root)
}

// Complete writes the space-joined command names of the config at path, or
// of the discovered config when path is empty. A missing or invalid config
// yields no output and no error.
func (a *App) Complete(dir, path string, w io.Writer) error {
	if path == "" {
		found, err := a.configLoader.Discover(dir, "")
		if err != nil {
			return nil //nolint:nilerr // completion never fails
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	cmds, err := a.configLoader.Load(path)
	if err != nil {
		return nil //nolint:nilerr // completion never fails
	}
	return linear.WriteCompletion(w, cmds)
}

// watch runs req once, then again each time the debounced file events under
// root settle. Runs never overlap: changes during a run queue one re-run.
func (a *App) watch(ctx context.Context, req *runner.Request, renderer ports.Renderer, root string) error {
	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	if err := w.Start(ctx, root); err != nil {
		_ = w.Stop()
		return err
	}

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case changes <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		defer func() { _ = w.Stop() }()

		for {
			a.runOnce(ctx, req, renderer)
			if ctx.Err() != nil {
				return nil
			}
			a.logger.Info(fmt.Sprintf("watching %s for changes", root))

			select {
			case <-ctx.Done():
				return nil
			case paths := <-changes:
				a.logger.Info(fmt.Sprintf("%s changed, re-running %q", paths[0], req.Name))
			}
		}
	})

	return g.Wait()
}

// runOnce executes one watch-mode run. Script failures were already shown
// by the renderer; engine errors are logged and watching continues.
func (a *App) runOnce(ctx context.Context, req *runner.Request, renderer ports.Renderer) {
	_, err := a.engine.Execute(ctx, req, renderer)
	if err == nil {
		return
	}
	var exitErr *domain.ExitCodeError
	if errors.As(err, &exitErr) {
		return
	}
	a.logger.Error(err)
}
