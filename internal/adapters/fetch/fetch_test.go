package fetch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rv/internal/adapters/fetch"
	"go.trai.ch/rv/internal/core/domain"
)

const sampleDescription = "Package: dplyr\nVersion: 1.1.4\nImports: rlang\n"

func TestLocalPathFetcher_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "DESCRIPTION"), []byte(sampleDescription), 0o644))

	f := fetch.NewLocalPathFetcher(t.TempDir())
	src := domain.NewLocalPathSource(domain.LocalPathSource{Path: dir})

	result, err := f.Fetch(context.Background(), "dplyr", src)
	require.NoError(t, err)
	assert.Equal(t, dir, result.WorkingTreePath)
	assert.Equal(t, "dplyr", result.Record.Name)
	assert.Equal(t, "1.1.4", result.Record.Version.String())
}

func TestBuiltinFetcher_RecordsOnly(t *testing.T) {
	f := fetch.NewBuiltinFetcher()
	src := domain.NewBuiltinSource(domain.BuiltinSource{Version: domain.MustParseVersion("4.3.1")})

	result, err := f.Fetch(context.Background(), "methods", src)
	require.NoError(t, err)
	assert.Empty(t, result.WorkingTreePath)
	assert.Equal(t, "methods", result.Record.Name)
}

func TestDispatcher_RoutesByKind(t *testing.T) {
	d := fetch.NewDispatcher(fetch.NewBuiltinFetcher(), fetch.NewLocalPathFetcher(t.TempDir()))

	assert.True(t, d.Supports(domain.SourceKindBuiltin))
	assert.False(t, d.Supports(domain.SourceKindVCS))

	_, err := d.Fetch(context.Background(), "x", domain.NewVCSSource(domain.VCSSource{URL: "https://example.com/x"}))
	assert.Error(t, err)
}
