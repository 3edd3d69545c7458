package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/engine/planner"
)

func TestPlanner_Plan_Delegates(t *testing.T) {
	p := planner.New()

	resolved := []domain.ResolvedNode{
		{Name: "dplyr", Version: domain.MustParseVersion("1.1.4"), Source: domain.NewBuiltinSource(domain.BuiltinSource{Version: domain.MustParseVersion("1.1.4")})},
	}
	library := domain.NewLibraryState(nil)

	plan := p.Plan(resolved, library)

	assert.Equal(t, []string{"dplyr"}, plan.Names(domain.ActionInstall))
}
