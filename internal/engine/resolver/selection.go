package resolver

import (
	"context"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

// selection is the outcome of resolving one name: the node to add to the
// closure plus its dependency edges and any remote overrides it declares
// for its own dependencies.
type selection struct {
	node         *domain.ResolvedNode
	dependencies []domain.Dependency
	remotes      map[string]domain.RemoteOverride
}

// selectCandidate applies the five-tier lookup priority (§4.E) for name
// under constraint. remote is the override, if any, a parent package's
// metadata declared for this name; it is consulted only at tier 5.
func (rs *resolution) selectCandidate(ctx context.Context, name string, constraint domain.Constraint, remote *domain.RemoteOverride) (*selection, error) {
	if opt, ok := rs.configByName[name]; ok && opt.HasSourcePin() {
		return rs.selectPinned(ctx, name, constraint, opt)
	}

	if version, ok := rs.input.Builtins[name]; ok && constraint.Satisfies(version) {
		return &selection{
			node: &domain.ResolvedNode{
				Name:         name,
				Version:      version,
				Source:       domain.NewBuiltinSource(domain.BuiltinSource{Version: version}),
				Distribution: domain.DistributionSource,
			},
		}, nil
	}

	if rs.input.Mode == ports.ModeSync && rs.input.PreviousLockfile != nil {
		if entry, ok := rs.input.PreviousLockfile.EntryByName(name); ok {
			if constraint.Satisfies(entry.Version) && rs.lockfileSourceStillValid(entry.Source) {
				return &selection{
					node: &domain.ResolvedNode{
						Name:           name,
						Version:        entry.Version,
						Source:         entry.Source,
						Distribution:   entry.Distribution,
						SHA256:         entry.SHA256,
						InstallOptions: entry.InstallOptions,
					},
					dependencies: lockfileDependencies(entry.Deps),
				}, nil
			}
		}
	}

	if sel, ok := rs.selectFromRepositories(name, constraint); ok {
		return sel, nil
	}

	if remote != nil && !rs.configByName[name].HasSourcePin() && !rs.input.Config.PrefersRepositoryFor(name) {
		return rs.selectFromVCS(ctx, name, *remote)
	}

	return nil, zerr.With(domain.ErrPackageNotFound, "name", name)
}

// lockfileSourceStillValid reports whether a repository-flavored lockfile
// entry's alias is still configured. Non-repository sources are always
// considered valid; the resolver never re-validates network reachability
// while reading a lockfile (§4.F "never performs network I/O").
func (rs *resolution) lockfileSourceStillValid(src domain.Source) bool {
	if src.Kind != domain.SourceKindRepository {
		return true
	}
	_, ok := rs.input.Config.RepositoryByAlias(src.Repository.Alias)
	return ok
}

// lockfileDependencies re-enqueues a lockfile entry's already-flattened
// dependency names with a universal constraint; the lockfile format does
// not retain the per-class breakdown that first produced them.
func lockfileDependencies(names []string) []domain.Dependency {
	deps := make([]domain.Dependency, 0, len(names))
	for _, n := range names {
		deps = append(deps, domain.Dependency{Name: n, Class: domain.ClassDepends})
	}
	return deps
}

// selectPinned resolves a name the configuration pins directly, either to
// a single repository alias or to a VersionControl/LocalPath/RemoteArchive
// source (§4.E tier 1). A pin that fails its constraint fails resolution
// at this name outright; there is no fallback to a lower tier.
func (rs *resolution) selectPinned(ctx context.Context, name string, constraint domain.Constraint, opt domain.DependencyOption) (*selection, error) {
	if opt.RepositoryAlias != "" && opt.Git == "" && opt.Path == "" && opt.URL == "" {
		repo, ok := rs.input.Config.RepositoryByAlias(opt.RepositoryAlias)
		if !ok {
			return nil, zerr.With(domain.ErrSourcePinFailed, "name", name)
		}
		candidate, ok := rs.bestRepositoryCandidate(repo, name, constraint, opt.ForceSource)
		if !ok {
			return nil, zerr.With(domain.ErrSourcePinFailed, "name", name)
		}
		return candidateSelection(candidate, opt), nil
	}

	src, err := pinnedSource(opt)
	if err != nil {
		return nil, err
	}

	result, err := rs.fetch(ctx, name, src)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourcePinFailed.Error()), "name", name)
	}
	if !constraint.Satisfies(result.Record.Version) {
		return nil, zerr.With(domain.ErrConstraintConflict, "name", name)
	}

	return fetchedSelection(name, src, result, opt), nil
}

func pinnedSource(opt domain.DependencyOption) (domain.Source, error) {
	switch {
	case opt.Git != "":
		refKind, ref := vcsRef(opt)
		return domain.NewVCSSource(domain.VCSSource{
			URL: opt.Git, RefKind: refKind, Ref: ref, Subdirectory: opt.Subdirectory,
		}), nil
	case opt.Path != "":
		return domain.NewLocalPathSource(domain.LocalPathSource{Path: opt.Path}), nil
	case opt.URL != "":
		return domain.NewRemoteURLSource(domain.RemoteURLSource{URL: opt.URL, SHA256: opt.SHA256}), nil
	default:
		return domain.Source{}, zerr.With(domain.ErrSourcePinFailed, "reason", "no pin fields set")
	}
}

func vcsRef(opt domain.DependencyOption) (domain.VCSRefKind, string) {
	switch {
	case opt.Commit != "":
		return domain.VCSRefCommit, opt.Commit
	case opt.Tag != "":
		return domain.VCSRefTag, opt.Tag
	case opt.Branch != "":
		return domain.VCSRefBranch, opt.Branch
	default:
		return domain.VCSRefBranch, "HEAD"
	}
}

func (rs *resolution) selectFromRepositories(name string, constraint domain.Constraint) (*selection, bool) {
	for _, repo := range rs.input.Config.Repositories {
		if candidate, ok := rs.bestRepositoryCandidate(repo, name, constraint, false); ok {
			return candidateSelection(candidate, domain.DependencyOption{}), true
		}
	}
	return nil, false
}

// bestRepositoryCandidate returns the newest candidate at repo satisfying
// constraint, preferring binary over source unless forceSource applies.
func (rs *resolution) bestRepositoryCandidate(repo domain.RepositoryConfig, name string, constraint domain.Constraint, forceSource bool) (domain.RepositoryCandidate, bool) {
	idx, ok := rs.input.Databases[repo.Alias]
	if !ok || idx == nil {
		return domain.RepositoryCandidate{}, false
	}

	var candidates []domain.RepositoryCandidate
	if !forceSource && !repo.ForceSource {
		candidates = append(candidates, idx.Binary[name]...)
	}
	candidates = append(candidates, idx.Source[name]...)

	for _, c := range candidates {
		if constraint.Satisfies(c.Version) {
			return c, true
		}
	}
	return domain.RepositoryCandidate{}, false
}

func candidateSelection(c domain.RepositoryCandidate, opt domain.DependencyOption) *selection {
	remotes := make(map[string]domain.RemoteOverride, len(c.Remotes))
	for _, r := range c.Remotes {
		remotes[r.DependencyName] = r
	}

	return &selection{
		node: &domain.ResolvedNode{
			Name:         c.Name,
			Version:      c.Version,
			Source:       domain.NewRepositorySource(domain.RepositorySource{Alias: c.RepoAlias, Kind: c.Distribution, URL: c.URL, SHA256: c.SHA256}),
			Distribution: c.Distribution,
			SHA256:       c.SHA256,
			InstallOptions: domain.InstallOptions{
				ForceSource:        opt.ForceSource,
				InstallSuggestions: opt.InstallSuggestions,
				DependenciesOnly:   opt.DependenciesOnly,
				ConfigureArgs:      opt.ConfigureArgs,
				Env:                opt.Env,
			},
		},
		dependencies: c.Dependencies,
		remotes:      remotes,
	}
}

func (rs *resolution) selectFromVCS(ctx context.Context, name string, remote domain.RemoteOverride) (*selection, error) {
	src := domain.NewVCSSource(remote.VCS)
	result, err := rs.fetch(ctx, name, src)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "name", name)
	}
	return fetchedSelection(name, src, result, domain.DependencyOption{}), nil
}

func fetchedSelection(name string, src domain.Source, result ports.FetchResult, opt domain.DependencyOption) *selection {
	remotes := make(map[string]domain.RemoteOverride, len(result.Record.Remotes))
	for _, r := range result.Record.Remotes {
		remotes[r.DependencyName] = r
	}

	return &selection{
		node: &domain.ResolvedNode{
			Name:         name,
			Version:      result.Record.Version,
			Source:       src,
			Distribution: domain.DistributionSource,
			InstallOptions: domain.InstallOptions{
				ForceSource:        opt.ForceSource,
				InstallSuggestions: opt.InstallSuggestions,
				DependenciesOnly:   opt.DependenciesOnly,
				ConfigureArgs:      opt.ConfigureArgs,
				Env:                opt.Env,
			},
		},
		dependencies: result.Record.Dependencies,
		remotes:      remotes,
	}
}

func (rs *resolution) fetch(ctx context.Context, name string, src domain.Source) (ports.FetchResult, error) {
	for _, f := range rs.input.Fetchers {
		if f.Supports(src.Kind) {
			return f.Fetch(ctx, name, src)
		}
	}
	return ports.FetchResult{}, zerr.With(domain.ErrFetchFailed, "name", name)
}
