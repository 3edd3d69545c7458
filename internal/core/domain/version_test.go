package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rv/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	v, err := domain.ParseVersion("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())
	assert.False(t, v.IsDev())
}

func TestParseVersion_DevTag(t *testing.T) {
	v, err := domain.ParseVersion("1.0-dev")
	require.NoError(t, err)
	assert.True(t, v.IsDev())
}

func TestParseVersion_Invalid(t *testing.T) {
	_, err := domain.ParseVersion("")
	assert.Error(t, err)

	_, err = domain.ParseVersion("abc")
	assert.Error(t, err)
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "1.0.0", "1.0.0", 0},
		{"trailing zeros equal", "1.0", "1.0.0", 0},
		{"numeric less", "1.0.0", "1.1.0", -1},
		{"numeric greater", "2.0.0", "1.9.9", 1},
		{"dev below release", "1.0-dev", "1.0", -1},
		{"release above dev", "1.0", "1.0-dev", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.MustParseVersion(tt.a)
			b := domain.MustParseVersion(tt.b)
			assert.Equal(t, tt.want, a.Compare(b))
		})
	}
}

func TestSortVersionsDescending(t *testing.T) {
	vs := []domain.Version{
		domain.MustParseVersion("1.0.0"),
		domain.MustParseVersion("2.1.0"),
		domain.MustParseVersion("1.5.0"),
	}
	domain.SortVersionsDescending(vs)
	assert.Equal(t, "2.1.0", vs[0].String())
	assert.Equal(t, "1.5.0", vs[1].String())
	assert.Equal(t, "1.0.0", vs[2].String())
}
