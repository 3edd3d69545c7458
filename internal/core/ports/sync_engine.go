package ports

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
)

// SyncInput bundles everything one sync run needs (§4.H): the plan to
// execute, the library and staging roots, the concurrency ceiling, and
// the collaborators each install task drives.
type SyncInput struct {
	Plan            domain.Plan
	LibraryPath     string
	StagingRoot     string
	Workers         int
	LinkMode        LinkStrategy
	CopyFallback    LinkStrategy
	Installer       Installer
	Fetchers        []SourceFetcher
	Library         Library
	OpenFileChecker OpenFileChecker
	Progress        ProgressSink
	SkipSafetyCheck bool
}

// SyncResult aggregates the outcome of one sync run (§7 "per-task
// outcomes... aggregates into an overall disposition").
type SyncResult struct {
	Installed   []string
	Updated     []string
	Removed     []string
	Deferred    []string
	Failed      map[string]error
	Unreachable []string
}

// Succeeded reports whether every plan step completed without failure.
// A deferred removal is not a failure; a package left unreachable
// because one of its dependencies failed is.
func (r SyncResult) Succeeded() bool {
	return len(r.Failed) == 0 && len(r.Unreachable) == 0
}

// SyncEngine executes a build plan against the installed library (§4.H).
type SyncEngine interface {
	Run(ctx context.Context, input SyncInput) (SyncResult, error)
}
