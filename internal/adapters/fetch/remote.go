package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"path/filepath"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// RemoteURLFetcher downloads a raw tarball URL outside any repository and
// verifies its checksum when one is pinned (§4.D "RemoteArchive").
type RemoteURLFetcher struct {
	httpClient *http.Client
	cacheDir   string
}

// NewRemoteURLFetcher builds a RemoteURLFetcher that extracts archives
// under cacheDir.
func NewRemoteURLFetcher(cacheDir string) *RemoteURLFetcher {
	return &RemoteURLFetcher{httpClient: &http.Client{}, cacheDir: cacheDir}
}

func (f *RemoteURLFetcher) Supports(kind domain.SourceKind) bool {
	return kind == domain.SourceKindRemoteURL
}

func (f *RemoteURLFetcher) Fetch(ctx context.Context, name string, src domain.Source) (ports.FetchResult, error) {
	if src.RemoteURL == nil {
		return ports.FetchResult{}, zerr.With(domain.ErrFetchFailed, "package", name)
	}
	r := src.RemoteURL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, http.NoBody)
	if err != nil {
		return ports.FetchResult{}, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return ports.FetchResult{}, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", r.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ports.FetchResult{}, zerr.With(domain.ErrFetchFailed, "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.FetchResult{}, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}

	if r.SHA256 != "" {
		sum := sha256.Sum256(body)
		if hex.EncodeToString(sum[:]) != r.SHA256 {
			return ports.FetchResult{}, zerr.With(domain.ErrIntegrityMismatch, "package", name)
		}
	}

	dest := filepath.Join(f.cacheDir, name)
	if err := extractTarGz(body, dest); err != nil {
		return ports.FetchResult{}, zerr.Wrap(err, domain.ErrFetchFailed.Error())
	}

	record, err := parseMetadataFile(dest)
	if err != nil {
		return ports.FetchResult{}, err
	}

	return ports.FetchResult{WorkingTreePath: dest, Record: record}, nil
}
