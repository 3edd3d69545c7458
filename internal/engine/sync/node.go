package sync

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rv/internal/core/ports"
)

// NodeID is the unique identifier for the sync engine Graft node.
const NodeID graft.ID = "engine.sync"

func init() {
	graft.Register(graft.Node[ports.SyncEngine]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SyncEngine, error) {
			return New(), nil
		},
	})
}
