package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/donk/internal/core/ports"
)

// NodeID is the unique identifier for the run lock Graft node.
const NodeID graft.ID = "adapter.locker"

func init() {
	graft.Register(graft.Node[ports.Locker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Locker, error) {
			return NewFileLocker(), nil
		},
	})
}
