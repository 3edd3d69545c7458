package domain

import "go.trai.ch/zerr"

// Sentinel errors for the core resolve-plan-sync engine. Each is wrapped
// with zerr.With at the point of use to attach the identifying context
// (name, alias, path) a caller needs to act on the failure.
var (
	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version string")

	// ErrInvalidConstraint is returned when a constraint expression cannot be parsed.
	ErrInvalidConstraint = zerr.New("invalid constraint expression")

	// ErrDuplicateRepositoryAlias is returned when a configuration declares the same repository alias twice.
	ErrDuplicateRepositoryAlias = zerr.New("duplicate repository alias")

	// ErrDuplicateDependency is returned when a configuration lists the same top-level dependency name twice.
	ErrDuplicateDependency = zerr.New("duplicate top-level dependency")

	// ErrConfigReadFailed is returned when the project configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read project configuration")

	// ErrConfigParseFailed is returned when the project configuration file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse project configuration")

	// ErrConfigNotFound is returned when no project configuration file is found.
	ErrConfigNotFound = zerr.New("could not find project configuration")

	// ErrDescriptorParseFailed is returned when a package description record fails to parse.
	ErrDescriptorParseFailed = zerr.New("failed to parse package description record")

	// ErrDescriptorMissingField is returned when a required field is absent from a description record.
	ErrDescriptorMissingField = zerr.New("package description record missing required field")

	// ErrIndexFetchFailed is returned when a repository index cannot be fetched over HTTP.
	ErrIndexFetchFailed = zerr.New("failed to fetch repository index")

	// ErrIndexCacheReadFailed is returned when a cached repository index cannot be read from disk.
	ErrIndexCacheReadFailed = zerr.New("failed to read repository index cache")

	// ErrIndexCacheWriteFailed is returned when a repository index cannot be written to the disk cache.
	ErrIndexCacheWriteFailed = zerr.New("failed to write repository index cache")

	// ErrIndexCacheStale is returned internally when a cache entry is past its TTL and no emergency fallback applies.
	ErrIndexCacheStale = zerr.New("repository index cache entry is stale")

	// ErrPackageNotFound is returned when a name has no candidate in any consulted source.
	ErrPackageNotFound = zerr.New("package not found in any source")

	// ErrConstraintConflict is returned when no candidate satisfies the intersected constraint for a name.
	ErrConstraintConflict = zerr.New("conflicting version constraints")

	// ErrSourcePinFailed is returned when a direct source pin fails its version constraint.
	ErrSourcePinFailed = zerr.New("pinned source does not satisfy version constraint")

	// ErrLockfileSourceUnreachable is returned when a lockfile entry's source can no longer be resolved.
	ErrLockfileSourceUnreachable = zerr.New("lockfile entry source is no longer reachable")

	// ErrLockfileSchemaMismatch is returned when a lockfile's schema version does not match the reader's.
	ErrLockfileSchemaMismatch = zerr.New("lockfile schema version mismatch")

	// ErrLockfileParseFailed is returned when a lockfile cannot be decoded.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockfileWriteFailed is returned when a lockfile cannot be written to disk.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrFetchFailed is returned when a source fetcher cannot obtain a working copy.
	ErrFetchFailed = zerr.New("failed to fetch package source")

	// ErrIntegrityMismatch is returned when a downloaded artifact's checksum does not match the declared one.
	ErrIntegrityMismatch = zerr.New("artifact checksum mismatch")

	// ErrVCSRefNotFound is returned when a version-control ref cannot be resolved.
	ErrVCSRefNotFound = zerr.New("version control ref not found")

	// ErrCycleUnbreakable is returned when a required-class cycle cannot be scheduled by the sync engine.
	ErrCycleUnbreakable = zerr.New("unbreakable dependency cycle")

	// ErrInstallFailed is returned when the external installer reports a non-zero exit for a package.
	ErrInstallFailed = zerr.New("package installation failed")

	// ErrInstallPostConditionFailed is returned when an installer exits successfully but leaves no valid metadata file.
	ErrInstallPostConditionFailed = zerr.New("installer did not produce a valid metadata file")

	// ErrLinkModeFailed is returned when every applicable link mode, including the copy fallback, failed.
	ErrLinkModeFailed = zerr.New("failed to materialize package into library")

	// ErrRemovalRefused is returned when a package directory is reported open and cannot be safely removed.
	ErrRemovalRefused = zerr.New("package directory is in use, removal refused")

	// ErrSyncCancelled is returned when a sync run observes cancellation.
	ErrSyncCancelled = zerr.New("sync cancelled")

	// ErrLibraryReadFailed is returned when the installed library cannot be enumerated.
	ErrLibraryReadFailed = zerr.New("failed to read installed library")

	// ErrMetadataReadFailed is returned when an installed package's metadata file cannot be read.
	ErrMetadataReadFailed = zerr.New("failed to read installed package metadata")
)

// withField is a small convenience wrapper around zerr.With used by
// domain-level validation that does not otherwise import zerr directly
// in every call site.
func withField(err error, key string, value any) error {
	return zerr.With(err, key, value)
}
