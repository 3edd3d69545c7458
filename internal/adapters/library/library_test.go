package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/rv/internal/adapters/library"
	"go.trai.ch/rv/internal/core/domain"
)

func writePackage(t *testing.T, libraryPath, name, version, fingerprint string) {
	t.Helper()
	dir := filepath.Join(libraryPath, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	desc := "Package: " + name + "\nVersion: " + version + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.MetadataFileName), []byte(desc), 0o644))
	if fingerprint != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, domain.FingerprintFileName), []byte(fingerprint), 0o644))
	}
}

func TestLibrary_Read_ParsesEachPackage(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "dplyr", "1.1.4", "repository@cran")
	writePackage(t, dir, "rlang", "1.1.1", "")

	lib := library.New()
	state, err := lib.Read(dir)
	require.NoError(t, err)

	require.True(t, state.Has("dplyr"))
	assert.Equal(t, "1.1.4", state.Installed["dplyr"].Version.String())
	assert.Equal(t, "repository@cran", state.Installed["dplyr"].SourceFingerprint)

	require.True(t, state.Has("rlang"))
	assert.Empty(t, state.Installed["rlang"].SourceFingerprint)
}

func TestLibrary_Read_SkipsDirectoryWithoutMetadata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "junk"), 0o755))
	writePackage(t, dir, "dplyr", "1.1.4", "")

	lib := library.New()
	state, err := lib.Read(dir)
	require.NoError(t, err)
	assert.False(t, state.Has("junk"))
	assert.True(t, state.Has("dplyr"))
}

func TestLibrary_Read_MissingDirectoryReturnsEmptyState(t *testing.T) {
	lib := library.New()
	state, err := lib.Read(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, state.Installed)
}

func TestLibrary_MetadataExists_MatchesExactVersion(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "dplyr", "1.1.4", "")

	lib := library.New()
	ok, err := lib.MetadataExists(dir, "dplyr", domain.MustParseVersion("1.1.4"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lib.MetadataExists(dir, "dplyr", domain.MustParseVersion("1.1.5"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLibrary_Remove_DeletesPackageDirectory(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "dplyr", "1.1.4", "")

	lib := library.New()
	require.NoError(t, lib.Remove(dir, "dplyr"))

	_, err := os.Stat(filepath.Join(dir, "dplyr"))
	assert.True(t, os.IsNotExist(err))
}

func TestOpenFileChecker_IsOpen_FalseForFreshDirectory(t *testing.T) {
	dir := t.TempDir()
	writePackage(t, dir, "dplyr", "1.1.4", "")

	checker := library.NewOpenFileChecker()
	open, err := checker.IsOpen(filepath.Join(dir, "dplyr"))
	require.NoError(t, err)
	assert.False(t, open)
}
