package fetch

import (
	"context"
	"os"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// LocalPathFetcher references an existing on-disk directory or tarball.
// No network access; a directory is used as-is, a tarball is extracted
// under cacheDir first (§4.D "LocalPath").
type LocalPathFetcher struct {
	cacheDir string
}

// NewLocalPathFetcher builds a LocalPathFetcher. cacheDir is used only
// when the referenced path is a tarball that must be extracted first.
func NewLocalPathFetcher(cacheDir string) *LocalPathFetcher {
	return &LocalPathFetcher{cacheDir: cacheDir}
}

func (f *LocalPathFetcher) Supports(kind domain.SourceKind) bool {
	return kind == domain.SourceKindLocalPath
}

func (f *LocalPathFetcher) Fetch(_ context.Context, name string, src domain.Source) (ports.FetchResult, error) {
	if src.LocalPath == nil {
		return ports.FetchResult{}, zerr.With(domain.ErrFetchFailed, "package", name)
	}
	p := src.LocalPath.Path

	info, err := os.Stat(p)
	if err != nil {
		return ports.FetchResult{}, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "path", p)
	}

	root := p
	if !info.IsDir() {
		data, err := os.ReadFile(p) //nolint:gosec // user-configured local path, trusted like any other project input
		if err != nil {
			return ports.FetchResult{}, zerr.Wrap(err, domain.ErrFetchFailed.Error())
		}
		dest := f.cacheDir + "/" + name
		if err := extractTarGz(data, dest); err != nil {
			return ports.FetchResult{}, zerr.Wrap(err, domain.ErrFetchFailed.Error())
		}
		root = dest
	}

	record, err := parseMetadataFile(root)
	if err != nil {
		return ports.FetchResult{}, err
	}

	return ports.FetchResult{WorkingTreePath: root, Record: record}, nil
}
