package domain

// Recognized environment variables (§6 "Environment inputs"). All are
// consumed only; the engine never sets them.
const (
	// EnvCacheDir overrides the per-project cache root.
	EnvCacheDir = "RV_CACHE_DIR"

	// EnvSharedCacheDir names a cache root shared across projects. No code
	// in this module reads it; only the per-project cache root is used.
	EnvSharedCacheDir = "RV_SHARED_CACHE_DIR"

	// EnvIndexTTL overrides the repository index cache TTL (a Go duration string).
	EnvIndexTTL = "RV_INDEX_TTL"

	// EnvMaxWorkers names a sync engine worker count ceiling. No code in
	// this module reads it.
	EnvMaxWorkers = "RV_MAX_WORKERS"

	// EnvCopyWorkers names a file-copy worker count for the copy link
	// mode. No code in this module reads it.
	EnvCopyWorkers = "RV_COPY_WORKERS"

	// EnvLinkMode forces a specific link mode instead of the per-OS default.
	EnvLinkMode = "RV_LINK_MODE"

	// EnvVCSSubmodules opts out of recursive submodule checkout for VCS
	// sources, which is on by default (§4.D).
	EnvVCSSubmodules = "RV_VCS_SUBMODULES"

	// EnvSysReqsAPIURL names a system-requirements lookup API endpoint. No
	// code in this module reads it.
	EnvSysReqsAPIURL = "RV_SYSREQS_API_URL"

	// EnvSkipSafetyCheck disables the removal-safety open-file check.
	EnvSkipSafetyCheck = "RV_SKIP_SAFETY_CHECK"

	// EnvInstallerCommand overrides the external install command invoked
	// per package (argv[0] of the installer boundary in §9).
	EnvInstallerCommand = "RV_INSTALLER_COMMAND"

	// EnvDistributionTag overrides the platform-specific binary distribution
	// tag used to probe a repository's compiled-package subtree (§4.C).
	EnvDistributionTag = "RV_DISTRIBUTION_TAG"
)
