package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rv/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[ports.Planner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Planner, error) {
			return New(), nil
		},
	})
}
