package ports

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
)

// RepositoryDatabase exposes the fetched, parsed, cached view of one
// repository's index files (§4.C). An index returned by Load is not
// modified afterwards; a later Load returns a new snapshot.
type RepositoryDatabase interface {
	// Load fetches (or reads from cache) the index for the given
	// repository at the given platform version and distribution tag.
	Load(ctx context.Context, repo domain.RepositoryConfig, platformVersion domain.Version, distributionTag string) (*domain.RepositoryIndex, error)

	// Lookup returns candidates for name, newest-first, binary before source.
	Lookup(idx *domain.RepositoryIndex, name string) []domain.RepositoryCandidate

	// Clear deletes every cached index, forcing the next Load for any
	// repository to re-fetch (§6 "cache is safe to delete at any time").
	Clear() error
}
