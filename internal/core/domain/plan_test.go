package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rv/internal/core/domain"
)

func TestNewPlan_Correctness(t *testing.T) {
	src := domain.NewRepositorySource(domain.RepositorySource{Alias: "cran", Kind: domain.DistributionSource, URL: "https://cran/pkg"})

	resolved := []domain.ResolvedNode{
		{Name: "up", Version: domain.MustParseVersion("1.0.0"), Source: src},
		{Name: "changed", Version: domain.MustParseVersion("2.0.0"), Source: src},
		{Name: "fresh", Version: domain.MustParseVersion("1.0.0"), Source: src},
	}

	library := domain.NewLibraryState([]domain.InstalledPackage{
		{Name: "up", Version: domain.MustParseVersion("1.0.0"), SourceFingerprint: src.String()},
		{Name: "changed", Version: domain.MustParseVersion("1.0.0"), SourceFingerprint: src.String()},
		{Name: "gone", Version: domain.MustParseVersion("1.0.0"), SourceFingerprint: src.String()},
		{Name: "base", Version: domain.MustParseVersion("4.3.0"), Builtin: true},
	})

	plan := domain.NewPlan(resolved, library)

	assert.ElementsMatch(t, []string{"up"}, plan.Names(domain.ActionUpToDate))
	assert.ElementsMatch(t, []string{"changed"}, plan.Names(domain.ActionUpdate))
	assert.ElementsMatch(t, []string{"fresh"}, plan.Names(domain.ActionInstall))
	assert.ElementsMatch(t, []string{"gone"}, plan.Names(domain.ActionRemove))

	var union []string
	union = append(union, plan.Names(domain.ActionInstall)...)
	union = append(union, plan.Names(domain.ActionUpdate)...)
	union = append(union, plan.Names(domain.ActionUpToDate)...)
	assert.ElementsMatch(t, []string{"up", "changed", "fresh"}, union)
}

func TestNewPlan_EmptyWhenNoChanges(t *testing.T) {
	src := domain.NewBuiltinSource(domain.BuiltinSource{Version: domain.MustParseVersion("4.3.0")})
	resolved := []domain.ResolvedNode{{Name: "base", Version: domain.MustParseVersion("4.3.0"), Source: src}}
	library := domain.NewLibraryState([]domain.InstalledPackage{
		{Name: "base", Version: domain.MustParseVersion("4.3.0"), SourceFingerprint: src.String()},
	})

	plan := domain.NewPlan(resolved, library)
	assert.True(t, plan.IsEmpty())
}
