package linkmode_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/rv/internal/adapters/linkmode"
	"go.trai.ch/rv/internal/core/ports"
)

func writeStagedTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "R", "help"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "DESCRIPTION"), []byte("Package: demo\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "R", "help", "demo.Rd"), []byte("docs"), 0o644))
	return dir
}

func TestCopy_Materialize_RecreatesTree(t *testing.T) {
	src := writeStagedTree(t)
	dst := filepath.Join(t.TempDir(), "demo")

	require.NoError(t, linkmode.NewCopy().Materialize(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "DESCRIPTION"))
	require.NoError(t, err)
	assert.Equal(t, "Package: demo\n", string(data))

	data, err = os.ReadFile(filepath.Join(dst, "R", "help", "demo.Rd"))
	require.NoError(t, err)
	assert.Equal(t, "docs", string(data))
}

func TestHardlink_Materialize_SameFilesystem(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "staged")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "DESCRIPTION"), []byte("Package: demo\n"), 0o644))

	dst := filepath.Join(root, "library", "demo")
	require.NoError(t, linkmode.NewHardlink().Materialize(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "DESCRIPTION"))
	require.NoError(t, err)
	assert.Equal(t, "Package: demo\n", string(data))
}

func TestSymlink_Materialize_LinksDirectory(t *testing.T) {
	src := writeStagedTree(t)
	dst := filepath.Join(t.TempDir(), "demo")

	require.NoError(t, linkmode.NewSymlink().Materialize(src, dst))

	info, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink)
}

func TestSelect_ExplicitOverrideWins(t *testing.T) {
	s := linkmode.Select(ports.LinkModeSymlink, t.TempDir())
	assert.Equal(t, ports.LinkModeSymlink, s.Mode())
}

func TestSelect_NoOverrideFallsToOSDefault(t *testing.T) {
	s := linkmode.Select("", t.TempDir())
	assert.NotEmpty(t, s.Mode())
}
