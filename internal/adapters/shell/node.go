package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/donk/internal/core/ports"
)

// NodeID is the unique identifier for the shell Graft node.
const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[ports.Shell]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Shell, error) {
			return NewShell(), nil
		},
	})
}
