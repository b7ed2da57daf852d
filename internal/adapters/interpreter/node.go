package interpreter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/donk/internal/adapters/logger"
	"go.trai.ch/donk/internal/core/ports"
)

// NodeID is the unique identifier for the interpreter Graft node.
const NodeID graft.ID = "adapter.interpreter"

func init() {
	graft.Register(graft.Node[ports.Interpreter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Interpreter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInterpreter(log), nil
		},
	})
}
