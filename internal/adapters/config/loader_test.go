package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rv/internal/adapters/config"
	"go.trai.ch/rv/internal/core/domain"
)

const sampleTOML = `
[project]
name = "demo"
r_version = "4.3.1"
prefer_repositories_for = ["gsm"]
dependencies = [
  "dplyr",
  { name = "gsm.app", git = "https://github.com/someorg/gsm", tag = "v2.3.0" },
  { name = "cli", version = ">= 3.4.0", install_suggestions = true },
]

[[project.repositories]]
alias = "cran"
url = "https://cran.r-project.org"

[[project.repositories]]
alias = "ppm"
url = "https://packagemanager.posit.co/cran/latest"
force_source = false
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ProjectConfigName), []byte(sampleTOML), 0o644))
	return dir
}

func TestLoader_Load(t *testing.T) {
	dir := writeSample(t)
	loader := config.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, "4.3.1", cfg.PlatformVersion.String())
	require.Len(t, cfg.Repositories, 2)
	assert.Equal(t, "cran", cfg.Repositories[0].Alias)
	assert.Equal(t, "ppm", cfg.Repositories[1].Alias)
	assert.Equal(t, []string{"gsm"}, cfg.PreferRepositoriesFor)

	require.Len(t, cfg.Dependencies, 3)
	assert.Equal(t, "dplyr", cfg.Dependencies[0].Name)
	assert.False(t, cfg.Dependencies[0].HasSourcePin())

	gsm := cfg.Dependencies[1]
	assert.Equal(t, "gsm.app", gsm.Name)
	assert.True(t, gsm.HasSourcePin())
	assert.Equal(t, "v2.3.0", gsm.Tag)

	cli := cfg.Dependencies[2]
	assert.Equal(t, ">= 3.4.0", cli.VersionConstraint)
	assert.True(t, cli.InstallSuggestions)
}

func TestLoader_Load_NotFound(t *testing.T) {
	loader := config.New()
	_, err := loader.Load(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Load_DuplicateAlias(t *testing.T) {
	dir := t.TempDir()
	dup := `
[project]
name = "demo"
r_version = "4.3.1"

[[project.repositories]]
alias = "cran"
url = "https://a"

[[project.repositories]]
alias = "cran"
url = "https://b"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ProjectConfigName), []byte(dup), 0o644))

	loader := config.New()
	_, err := loader.Load(dir)
	assert.ErrorIs(t, err, domain.ErrDuplicateRepositoryAlias)
}
