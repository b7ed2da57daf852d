package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/donk/internal/adapters/interpreter" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/donk/internal/adapters/lock"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/donk/internal/adapters/shell"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/donk/internal/core/ports"
)

// NodeID is the unique identifier for the engine Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			interpreter.NodeID,
			lock.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			sh, err := graft.Dep[ports.Shell](ctx)
			if err != nil {
				return nil, err
			}

			interp, err := graft.Dep[ports.Interpreter](ctx)
			if err != nil {
				return nil, err
			}

			locker, err := graft.Dep[ports.Locker](ctx)
			if err != nil {
				return nil, err
			}

			return NewEngine(sh, interp, locker), nil
		},
	})
}
