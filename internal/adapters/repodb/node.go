package repodb

import (
	"context"
	"os"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

// NodeID is the unique identifier for the repository database Graft node.
const NodeID graft.ID = "adapter.repodb"

func init() {
	graft.Register(graft.Node[ports.RepositoryDatabase]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepositoryDatabase, error) {
			cacheRoot := os.Getenv(domain.EnvCacheDir)
			if cacheRoot == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return nil, err
				}
				cacheRoot = domain.DefaultCacheRoot(cwd)
			}

			ttl := parseTTL(os.Getenv(domain.EnvIndexTTL))
			return New(domain.DefaultIndexCachePath(cacheRoot), ttl), nil
		},
	})
}

func parseTTL(raw string) time.Duration {
	if raw == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultTTL
	}
	return d
}
