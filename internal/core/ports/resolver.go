package ports

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
)

// ResolutionMode controls whether the resolver consults the previous
// lockfile at priority step 3 (§4.E).
type ResolutionMode string

// The two resolution modes.
const (
	ModeSync    ResolutionMode = "sync"    // default: prefer the lockfile
	ModeUpgrade ResolutionMode = "upgrade" // skip the lockfile at step 3
)

// UnresolvedName is one entry in a ResolutionFailure: a name that could
// not be resolved, with the constraints its contributors placed on it
// and what was available at each consulted source (§4.E, §7).
type UnresolvedName struct {
	Name          string
	Reason        string
	Contributors  []string
	Constraints   []domain.Constraint
	AvailableAt   map[string][]domain.Version // source label -> versions seen
}

// ResolutionFailure is the structured result returned when one or more
// names could not be resolved; the caller presents all entries atomically.
type ResolutionFailure struct {
	Unresolved []UnresolvedName
}

// Error implements the error interface with a compact summary; the full
// structured detail remains available on the value for callers that want it.
func (f *ResolutionFailure) Error() string {
	if len(f.Unresolved) == 0 {
		return "resolution failed"
	}
	msg := "resolution failed for: "
	for i, u := range f.Unresolved {
		if i > 0 {
			msg += ", "
		}
		msg += u.Name
	}
	return msg
}

// ResolutionInput bundles everything the resolver needs (§4.E). Databases
// carry full package metadata, so direct-pinned repository candidates
// never require a live fetch during resolution; Fetchers are consulted
// only for VersionControl / LocalPath / RemoteArchive pins, whose
// dependency lists are not known until their metadata is read (§4.D).
type ResolutionInput struct {
	Config           domain.ProjectConfig
	PreviousLockfile *domain.Lockfile
	Mode             ResolutionMode
	Databases        map[string]*domain.RepositoryIndex // alias -> loaded index
	Builtins         map[string]domain.Version
	Fetchers         []SourceFetcher
}

// Resolver computes the resolved closure for a project configuration (§4.E).
type Resolver interface {
	Resolve(ctx context.Context, input ResolutionInput) ([]domain.ResolvedNode, error)
}
