package library

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/rv/internal/core/ports"
)

// NodeID is the unique identifier for the library Graft node.
const NodeID graft.ID = "adapter.library"

// OpenFileCheckerNodeID is the unique identifier for the open-file-checker Graft node.
const OpenFileCheckerNodeID graft.ID = "adapter.library.openfilechecker"

func init() {
	graft.Register(graft.Node[ports.Library]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Library, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.OpenFileChecker]{
		ID:        OpenFileCheckerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OpenFileChecker, error) {
			return NewOpenFileChecker(), nil
		},
	})
}
