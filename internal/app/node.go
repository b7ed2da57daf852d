package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/donk/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/donk/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/donk/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/donk/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			runner.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			engine, err := graft.Dep[*runner.Engine](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			newWatcher := func() (ports.Watcher, error) {
				w, err := watcher.NewWatcher(log)
				if err != nil {
					return nil, err
				}
				return w, nil
			}
			return New(loader, engine, log, newWatcher), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    app,
				Logger: log,
			}, nil
		},
	})
}
