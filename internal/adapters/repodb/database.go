// Package repodb implements the repository database (§4.C): fetching,
// parsing, and disk-caching repository index files per repository alias.
package repodb

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"go.trai.ch/rv/internal/core/descriptor"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	sourceIndexSuffix = "src/contrib/PACKAGES"

	httpClientTimeout   = 30 * time.Second
	defaultTTL          = 1 * time.Hour
	emergencyMultiplier = 5.0
)

var _ ports.RepositoryDatabase = (*Database)(nil)

// Database implements ports.RepositoryDatabase: an HTTP fetch layered
// over a content-addressable disk cache with explicit TTL policy (§9
// "Network fetch + in-process cache").
type Database struct {
	cache      *diskCache
	httpClient *http.Client
	ttl        time.Duration
	group      singleflight.Group
}

// New creates a Database rooted at cacheDir with the given TTL. A zero
// ttl uses the default.
func New(cacheDir string, ttl time.Duration) *Database {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Database{
		cache:      newDiskCache(cacheDir),
		httpClient: &http.Client{Timeout: httpClientTimeout},
		ttl:        ttl,
	}
}

// Load fetches (or reuses a cached, still-fresh) index for repo at the
// given platform version and distribution tag (§4.C protocol). Concurrent
// Load calls for the same key (e.g. one project configuring the same
// repository twice, or a caller loading several projects' repositories
// in parallel) collapse into a single fetch via singleflight.
func (d *Database) Load(ctx context.Context, repo domain.RepositoryConfig, platformVersion domain.Version, distributionTag string) (*domain.RepositoryIndex, error) {
	key := domain.CacheKey{
		RepoURL:         repo.URL,
		PlatformVersion: platformVersion.String(),
		DistributionTag: distributionTag,
	}

	v, err, _ := d.group.Do(key.String(), func() (any, error) {
		return d.loadOnce(ctx, repo, key, platformVersion, distributionTag)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.RepositoryIndex), nil
}

func (d *Database) loadOnce(ctx context.Context, repo domain.RepositoryConfig, key domain.CacheKey, platformVersion domain.Version, distributionTag string) (*domain.RepositoryIndex, error) {
	now := time.Now()
	entry, cacheErr := d.cache.load(key)
	if cacheErr == nil && entry.IsFresh(d.ttl, now) {
		return &entry.Index, nil
	}

	idx, fetchErr := d.fetch(ctx, repo, platformVersion, distributionTag)
	if fetchErr == nil {
		newEntry := domain.CacheEntry{Key: key, Index: *idx, StoredAt: now}
		_ = d.cache.save(key, newEntry) // cache write failure is not fatal to the resolution
		return idx, nil
	}

	if cacheErr == nil && entry.IsUsableEmergency(d.ttl, emergencyMultiplier, now) {
		return &entry.Index, nil
	}

	return nil, fetchErr
}

// Lookup returns candidates for name, newest-first, binary before source.
func (d *Database) Lookup(idx *domain.RepositoryIndex, name string) []domain.RepositoryCandidate {
	return idx.Lookup(name)
}

// Clear removes every cached index entry from disk.
func (d *Database) Clear() error {
	return d.cache.clear()
}

// fetch retrieves and parses both index flavors for repo, retrying the
// whole fetch once on a transient network error before giving up
// (§4.I "Network error on database fetch: one retry").
func (d *Database) fetch(ctx context.Context, repo domain.RepositoryConfig, platformVersion domain.Version, distributionTag string) (*domain.RepositoryIndex, error) {
	var idx *domain.RepositoryIndex
	var err error

	for attempt := 0; attempt < 2; attempt++ {
		idx, err = d.fetchOnce(ctx, repo, platformVersion, distributionTag)
		if err == nil {
			return idx, nil
		}
	}

	return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexFetchFailed.Error()), "repository", repo.Alias)
}

func (d *Database) fetchOnce(ctx context.Context, repo domain.RepositoryConfig, platformVersion domain.Version, distributionTag string) (*domain.RepositoryIndex, error) {
	idx := &domain.RepositoryIndex{
		Alias:           repo.Alias,
		PlatformVersion: platformVersion,
		DistributionTag: distributionTag,
		FetchedAt:       time.Now(),
	}

	sourceBody, sourceErr := d.get(ctx, joinIndexURL(repo.URL, sourceIndexSuffix))
	if sourceErr != nil {
		return nil, sourceErr
	}
	if sourceBody != nil {
		records, _ := descriptor.ParseIndex(string(sourceBody))
		idx.Source = indexByName(records, domain.DistributionSource, repo.Alias, sourceArchiveURL(repo.URL))
	}

	if !repo.ForceSource && probesBinaryIndex(repo.URL) {
		binaryPath := binaryIndexPath(distributionTag, platformVersion)
		binaryBody, binaryErr := d.get(ctx, joinIndexURL(repo.URL, binaryPath))
		if binaryErr != nil {
			return nil, binaryErr
		}
		if binaryBody != nil {
			records, _ := descriptor.ParseIndex(string(binaryBody))
			binaryDir := joinIndexURL(repo.URL, "bin/"+distributionTag+"/contrib/"+platformVersion.String())
			idx.Binary = indexByName(records, domain.DistributionBinary, repo.Alias, func(name, version string) string {
				return binaryDir + "/" + name + "_" + version + binaryArchiveExt(distributionTag)
			})
		}
	}

	return idx, nil
}

// sourceArchiveURL returns an archive-URL builder for the source flavor,
// rooted at repoURL's src/contrib directory.
func sourceArchiveURL(repoURL string) func(name, version string) string {
	dir := joinIndexURL(repoURL, "src/contrib")
	return func(name, version string) string {
		return dir + "/" + name + "_" + version + ".tar.gz"
	}
}

// binaryArchiveExt picks the platform archive extension by distribution
// tag naming convention (§6 repository layout).
func binaryArchiveExt(distributionTag string) string {
	switch {
	case strings.Contains(distributionTag, "windows"):
		return ".zip"
	case strings.Contains(distributionTag, "macos"), strings.Contains(distributionTag, "darwin"):
		return ".tgz"
	default:
		return ".tar.gz"
	}
}

// get performs an HTTP GET and returns the body, or (nil, nil) on a 404
// (§4.C "404 on one flavor is not an error").
func (d *Database) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexFetchFailed.Error())
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexFetchFailed.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(domain.ErrIndexFetchFailed, "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexFetchFailed.Error())
	}
	return body, nil
}

func indexByName(records []domain.PackageRecord, kind domain.DistributionKind, repoAlias string, archiveURL func(name, version string) string) map[string][]domain.RepositoryCandidate {
	byName := make(map[string][]domain.RepositoryCandidate)
	for _, r := range records {
		byName[r.Name] = append(byName[r.Name], domain.RepositoryCandidate{
			Name:             r.Name,
			Version:          r.Version,
			Distribution:     kind,
			RepoAlias:        repoAlias,
			URL:              archiveURL(r.Name, r.Version.String()),
			Dependencies:     r.Dependencies,
			NeedsCompilation: r.NeedsCompilation,
			Remotes:          r.Remotes,
		})
	}
	for name, candidates := range byName {
		versions := make([]domain.Version, len(candidates))
		for i, c := range candidates {
			versions[i] = c.Version
		}
		domain.SortVersionsDescending(versions)
		sorted := make([]domain.RepositoryCandidate, len(candidates))
		for i, v := range versions {
			for _, c := range candidates {
				if c.Version.Equal(v) {
					sorted[i] = c
					break
				}
			}
		}
		byName[name] = sorted
	}
	return byName
}

func joinIndexURL(base, suffix string) string {
	return strings.TrimRight(base, "/") + "/" + suffix
}

func binaryIndexPath(distributionTag string, platformVersion domain.Version) string {
	return "bin/" + distributionTag + "/contrib/" + platformVersion.String() + "/PACKAGES"
}

// probesBinaryIndex applies the heuristic from §4.C: repositories whose
// URL structure cannot carry a platform-specific binary subtree skip the
// probe entirely to avoid a guaranteed 404. A bare host with no path
// component (the canonical root archive site) is the case this excludes.
func probesBinaryIndex(repoURL string) bool {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(repoURL, "https://"), "http://")
	trimmed = strings.TrimRight(trimmed, "/")
	return strings.Contains(trimmed, "/")
}
