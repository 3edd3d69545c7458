package ports

import "go.trai.ch/rv/internal/core/domain"

// Planner diffs a resolved closure against the current library state
// (§4.G). It performs no I/O itself; library state is gathered by the
// caller via Library.Read.
type Planner interface {
	Plan(resolved []domain.ResolvedNode, library domain.LibraryState) domain.Plan
}
