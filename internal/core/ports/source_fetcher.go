package ports

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
)

// FetchResult is what a SourceFetcher returns on success: the path to a
// verified, extracted working copy plus the parsed top-level metadata
// record used by the resolver to discover transitive dependencies (§4.D).
type FetchResult struct {
	WorkingTreePath string
	Record          domain.PackageRecord
	ResolvedCommit  string // checked-out commit; populated for VCS sources only
}

// SourceFetcher obtains a package's working tree from one source
// variant. There is one implementation per domain.SourceKind.
type SourceFetcher interface {
	// Supports reports whether this fetcher handles the given source kind.
	Supports(kind domain.SourceKind) bool

	// Fetch obtains and verifies the working tree for src.
	Fetch(ctx context.Context, name string, src domain.Source) (FetchResult, error)
}
