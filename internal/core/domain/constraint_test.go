package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rv/internal/core/domain"
)

func TestParseConstraint_Empty(t *testing.T) {
	c, err := domain.ParseConstraint("")
	require.NoError(t, err)
	assert.True(t, c.IsUniversal())
	assert.True(t, c.Satisfies(domain.MustParseVersion("0.0.1")))
}

func TestParseConstraint_GreaterEqual(t *testing.T) {
	c, err := domain.ParseConstraint(">= 1.2.0")
	require.NoError(t, err)
	assert.True(t, c.Satisfies(domain.MustParseVersion("1.2.0")))
	assert.True(t, c.Satisfies(domain.MustParseVersion("1.3.0")))
	assert.False(t, c.Satisfies(domain.MustParseVersion("1.1.9")))
}

func TestParseConstraint_Invalid(t *testing.T) {
	_, err := domain.ParseConstraint("~> 1.0")
	assert.Error(t, err)
}

func TestConstraint_And(t *testing.T) {
	lower, err := domain.ParseConstraint(">= 1.0.0")
	require.NoError(t, err)
	upper, err := domain.ParseConstraint("< 2.0.0")
	require.NoError(t, err)

	combined := lower.And(upper)
	assert.True(t, combined.Satisfies(domain.MustParseVersion("1.5.0")))
	assert.False(t, combined.Satisfies(domain.MustParseVersion("2.0.0")))
	assert.False(t, combined.Satisfies(domain.MustParseVersion("0.9.0")))
}

func TestConstraint_HighestSatisfying(t *testing.T) {
	c, err := domain.ParseConstraint("<= 1.5.0")
	require.NoError(t, err)

	candidates := domain.SortVersionsDescending([]domain.Version{
		domain.MustParseVersion("2.0.0"),
		domain.MustParseVersion("1.5.0"),
		domain.MustParseVersion("1.0.0"),
	})

	v, ok := c.HighestSatisfying(candidates)
	require.True(t, ok)
	assert.Equal(t, "1.5.0", v.String())
}

func TestConstraint_HighestSatisfying_NoMatch(t *testing.T) {
	c, err := domain.ParseConstraint(">= 5.0.0")
	require.NoError(t, err)

	_, ok := c.HighestSatisfying([]domain.Version{domain.MustParseVersion("1.0.0")})
	assert.False(t, ok)
}
