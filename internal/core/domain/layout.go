package domain

import "path/filepath"

// Filesystem layout constants for the on-disk cache and project metadata
// (§6 "Cache layout"). Safe to delete at any time; the system re-populates
// it on next use.
const (
	// RVDirName is the name of the per-project metadata directory.
	RVDirName = ".rv"

	// CacheDirName is the name of the cache directory, relative to a cache root.
	CacheDirName = "cache"

	// IndexCacheDirName holds parsed repository index entries.
	IndexCacheDirName = "index"

	// ArchiveCacheDirName holds downloaded source/binary archives.
	ArchiveCacheDirName = "archives"

	// VCSCacheDirName holds version-control clone caches.
	VCSCacheDirName = "vcs"

	// StagingDirName is the name of the sync engine's staging directory, relative to RVDirName.
	StagingDirName = "staging"

	// LockfileName is the name of the project lockfile.
	LockfileName = "rv.lock"

	// ProjectConfigName is the name of the project configuration file.
	ProjectConfigName = "rv.toml"

	// LibraryDirName is the name of the default project-local package library.
	LibraryDirName = "library"

	// MetadataFileName is the name of a package's own metadata file
	// inside its library or staging directory (§3 "Installed library").
	MetadataFileName = "DESCRIPTION"

	// FingerprintFileName is a small sidecar file the sync engine writes
	// next to a package's metadata after materializing it, recording the
	// source fingerprint the plan diff compares against (§4.G). It is
	// bookkeeping the core keeps itself; the installer never sees it.
	FingerprintFileName = ".rv-source"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCacheRoot returns the default cache root under the project's
// metadata directory (used when no cache-directory override environment
// variable is set).
func DefaultCacheRoot(projectRoot string) string {
	return filepath.Join(projectRoot, RVDirName, CacheDirName)
}

// DefaultIndexCachePath returns the default path for parsed repository indices.
func DefaultIndexCachePath(cacheRoot string) string {
	return filepath.Join(cacheRoot, IndexCacheDirName)
}

// DefaultArchiveCachePath returns the default path for downloaded archives.
func DefaultArchiveCachePath(cacheRoot string) string {
	return filepath.Join(cacheRoot, ArchiveCacheDirName)
}

// DefaultVCSCachePath returns the default path for version-control clones.
func DefaultVCSCachePath(cacheRoot string) string {
	return filepath.Join(cacheRoot, VCSCacheDirName)
}

// DefaultStagingPath returns the default staging directory for a sync run.
func DefaultStagingPath(projectRoot string) string {
	return filepath.Join(projectRoot, RVDirName, StagingDirName)
}

// DefaultLibraryPath returns the default project-local package library path.
func DefaultLibraryPath(projectRoot string) string {
	return filepath.Join(projectRoot, LibraryDirName)
}

// DefaultLockfilePath returns the default lockfile path.
func DefaultLockfilePath(projectRoot string) string {
	return filepath.Join(projectRoot, LockfileName)
}
