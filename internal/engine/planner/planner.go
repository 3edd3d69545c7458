// Package planner implements the build-plan diff (§4.G): partitioning a
// resolved closure against installed library state into up-to-date,
// update, install, and remove actions.
package planner

import (
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

var _ ports.Planner = (*Planner)(nil)

// Planner implements ports.Planner over domain.NewPlan.
type Planner struct{}

// New creates a Planner.
func New() *Planner {
	return &Planner{}
}

func (p *Planner) Plan(resolved []domain.ResolvedNode, library domain.LibraryState) domain.Plan {
	return domain.NewPlan(resolved, library)
}
