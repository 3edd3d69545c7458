package fetch

import (
	"context"
	"os"
	"strconv"

	"github.com/grindlemire/graft"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

// NodeID is the unique identifier for the source fetcher Graft node.
const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[ports.SourceFetcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceFetcher, error) {
			cacheRoot := os.Getenv(domain.EnvCacheDir)
			if cacheRoot == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return nil, err
				}
				cacheRoot = domain.DefaultCacheRoot(cwd)
			}

			recurseSubmodules := true
			if raw := os.Getenv(domain.EnvVCSSubmodules); raw != "" {
				if parsed, err := strconv.ParseBool(raw); err == nil {
					recurseSubmodules = parsed
				}
			}

			return NewDispatcher(
				NewRepositoryFetcher(domain.DefaultArchiveCachePath(cacheRoot)),
				NewVCSFetcher(domain.DefaultVCSCachePath(cacheRoot), recurseSubmodules),
				NewLocalPathFetcher(domain.DefaultArchiveCachePath(cacheRoot)),
				NewRemoteURLFetcher(domain.DefaultArchiveCachePath(cacheRoot)),
				NewBuiltinFetcher(),
			), nil
		},
	})
}
