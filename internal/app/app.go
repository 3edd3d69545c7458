// Package app wires the resolve-plan-sync pipeline into the two
// operations the CLI exposes: computing a plan and applying it.
package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/rv/internal/adapters/linkmode"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// App orchestrates a project's configuration through resolution,
// planning, and (optionally) synchronization.
type App struct {
	configLoader    ports.ConfigLoader
	repositoryDB    ports.RepositoryDatabase
	resolver        ports.Resolver
	lockfileStore   ports.LockfileStore
	planner         ports.Planner
	syncEngine      ports.SyncEngine
	installer       ports.Installer
	library         ports.Library
	openFileChecker ports.OpenFileChecker
	fetchers        []ports.SourceFetcher
	logger          ports.Logger
	tracer          ports.Tracer
}

// New builds an App from its collaborators.
func New(
	configLoader ports.ConfigLoader,
	repositoryDB ports.RepositoryDatabase,
	resolver ports.Resolver,
	lockfileStore ports.LockfileStore,
	planner ports.Planner,
	syncEngine ports.SyncEngine,
	installer ports.Installer,
	library ports.Library,
	openFileChecker ports.OpenFileChecker,
	fetchers []ports.SourceFetcher,
	logger ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader:    configLoader,
		repositoryDB:    repositoryDB,
		resolver:        resolver,
		lockfileStore:   lockfileStore,
		planner:         planner,
		syncEngine:      syncEngine,
		installer:       installer,
		library:         library,
		openFileChecker: openFileChecker,
		fetchers:        fetchers,
		logger:          logger,
		tracer:          tracer,
	}
}

// PlanResult bundles a computed plan with the resolved closure it was
// diffed from, since sync needs both.
type PlanResult struct {
	Plan     domain.Plan
	Resolved []domain.ResolvedNode
	Config   domain.ProjectConfig
	Lockfile domain.Lockfile
}

// Plan loads projectRoot's configuration, resolves its dependency
// closure, and diffs it against the current library state, without
// mutating anything (§4.G "plan mode").
func (a *App) Plan(ctx context.Context, projectRoot string, mode ports.ResolutionMode) (PlanResult, error) {
	ctx, span := a.tracer.Start(ctx, "app.Plan")
	defer span.End()

	cfg, err := a.configLoader.Load(projectRoot)
	if err != nil {
		span.RecordError(err)
		return PlanResult{}, zerr.Wrap(err, "failed to load project configuration")
	}
	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		return PlanResult{}, err
	}

	previous, err := a.lockfileStore.Read(domain.DefaultLockfilePath(projectRoot))
	if err != nil {
		span.RecordError(err)
		return PlanResult{}, zerr.Wrap(err, "failed to read lockfile")
	}

	databases, err := a.loadDatabases(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return PlanResult{}, err
	}

	resolved, err := a.resolver.Resolve(ctx, ports.ResolutionInput{
		Config:           cfg,
		PreviousLockfile: previous,
		Mode:             mode,
		Databases:        databases,
		Builtins:         domain.DefaultBuiltins(cfg.PlatformVersion),
		Fetchers:         a.fetchers,
	})
	if err != nil {
		span.RecordError(err)
		return PlanResult{}, zerr.Wrap(err, "resolution failed")
	}

	libraryPath := domain.DefaultLibraryPath(projectRoot)
	libraryState, err := a.library.Read(libraryPath)
	if err != nil {
		span.RecordError(err)
		return PlanResult{}, zerr.Wrap(err, "failed to read installed library")
	}

	plan := a.planner.Plan(resolved, libraryState)

	repos := make([]domain.LockfileRepository, 0, len(cfg.Repositories))
	for _, r := range cfg.Repositories {
		repos = append(repos, domain.LockfileRepository{Alias: r.Alias, URL: r.URL, ForceSource: r.ForceSource})
	}
	lock := domain.NewLockfile(cfg.PlatformVersion, repos, resolved)

	return PlanResult{Plan: plan, Resolved: resolved, Config: cfg, Lockfile: lock}, nil
}

// Sync computes a plan (as Plan does) and applies it: staged installs,
// removals, and link-mode materialization, then rewrites the lockfile
// only if every step succeeded (§4.G "lockfile is not rewritten if any
// node failed").
func (a *App) Sync(ctx context.Context, projectRoot string, mode ports.ResolutionMode, progress ports.ProgressSink, workers int) (ports.SyncResult, error) {
	ctx, span := a.tracer.Start(ctx, "app.Sync")
	defer span.End()

	planResult, err := a.Plan(ctx, projectRoot, mode)
	if err != nil {
		span.RecordError(err)
		return ports.SyncResult{}, err
	}

	libraryPath := domain.DefaultLibraryPath(projectRoot)
	stagingRoot := domain.DefaultStagingPath(projectRoot)
	if err := os.MkdirAll(stagingRoot, domain.DirPerm); err != nil {
		span.RecordError(err)
		return ports.SyncResult{}, zerr.Wrap(err, "failed to create staging directory")
	}

	selector := linkmode.Select(ports.LinkMode(os.Getenv(domain.EnvLinkMode)), libraryPath)

	result, err := a.syncEngine.Run(ctx, ports.SyncInput{
		Plan:            planResult.Plan,
		LibraryPath:     libraryPath,
		StagingRoot:     stagingRoot,
		Workers:         workers,
		LinkMode:        selector,
		CopyFallback:    linkmode.NewCopy(),
		Installer:       a.installer,
		Fetchers:        a.fetchers,
		Library:         a.library,
		OpenFileChecker: a.openFileChecker,
		Progress:        progress,
		SkipSafetyCheck: os.Getenv(domain.EnvSkipSafetyCheck) == "true",
	})
	if err != nil {
		span.RecordError(err)
		return result, err
	}

	if err := a.lockfileStore.Write(domain.DefaultLockfilePath(projectRoot), planResult.Lockfile); err != nil {
		span.RecordError(err)
		return result, zerr.Wrap(err, "failed to write lockfile")
	}

	return result, nil
}

// loadDatabases loads every configured repository's index concurrently
// (§4.C "fetches multiple indices in parallel"); the resolver applies
// the declared priority order itself once every index is in hand, so
// load order here doesn't need to match configuration order.
func (a *App) loadDatabases(ctx context.Context, cfg domain.ProjectConfig) (map[string]*domain.RepositoryIndex, error) {
	tag := os.Getenv(domain.EnvDistributionTag)
	if tag == "" {
		tag = domain.DefaultDistributionTag()
	}

	databases := make(map[string]*domain.RepositoryIndex, len(cfg.Repositories))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, repo := range cfg.Repositories {
		repo := repo
		g.Go(func() error {
			idx, err := a.repositoryDB.Load(gctx, repo, cfg.PlatformVersion, tag)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to load repository index"), "alias", repo.Alias)
			}
			mu.Lock()
			databases[repo.Alias] = idx
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return databases, nil
}

// ProjectRoot resolves the project root to use when none is given: the
// current working directory.
func ProjectRoot(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	return os.Getwd()
}

// CleanCache deletes every cached repository index (§6 "cache is safe
// to delete at any time"); the next Plan or Sync re-fetches as needed.
func (a *App) CleanCache() error {
	return a.repositoryDB.Clear()
}

// Logger exposes the app's logger for top-level CLI error reporting.
func (a *App) Logger() ports.Logger {
	return a.logger
}

// WriteLockfile writes l to path, for callers (the `lock` command) that
// want the lockfile written without running a full sync.
func (a *App) WriteLockfile(path string, l domain.Lockfile) error {
	return a.lockfileStore.Write(path, l)
}
