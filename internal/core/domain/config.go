package domain

// RepositoryConfig is one entry in a project's ordered repository list.
// Order defines priority (invariant 4 in §3: earliest wins).
type RepositoryConfig struct {
	Alias       string
	URL         string
	ForceSource bool
}

// DependencyOption is a single top-level dependency entry as declared in
// project configuration, with whichever per-dependency options were set.
type DependencyOption struct {
	Name               string
	VersionConstraint  string
	RepositoryAlias    string
	Git                string
	Branch             string
	Tag                string
	Commit             string
	Subdirectory       string
	Path               string
	URL                string
	SHA256             string
	InstallSuggestions bool
	DependenciesOnly   bool
	ForceSource        bool
	ConfigureArgs      []string
	Env                map[string]string
}

// HasSourcePin reports whether this entry pins the dependency to a
// specific source rather than leaving it to repository/lockfile lookup.
func (d DependencyOption) HasSourcePin() bool {
	return d.RepositoryAlias != "" || d.Git != "" || d.Path != "" || d.URL != ""
}

// ProjectConfig is the decoded form of a project's declarative
// configuration document (§6): platform version, ordered repositories,
// and top-level dependencies.
type ProjectConfig struct {
	Name                  string
	PlatformVersion       Version
	Repositories          []RepositoryConfig
	Dependencies          []DependencyOption
	PreferRepositoriesFor []string
}

// PrefersRepositoryFor reports whether name is listed in
// PreferRepositoriesFor, reverting any remote override for it.
func (c ProjectConfig) PrefersRepositoryFor(name string) bool {
	for _, n := range c.PreferRepositoriesFor {
		if n == name {
			return true
		}
	}
	return false
}

// RepositoryByAlias returns the configured repository with the given
// alias, if present.
func (c ProjectConfig) RepositoryByAlias(alias string) (RepositoryConfig, bool) {
	for _, r := range c.Repositories {
		if r.Alias == alias {
			return r, true
		}
	}
	return RepositoryConfig{}, false
}

// Validate checks configuration-level invariants that do not require
// network access: unique repository aliases and unique dependency names.
func (c ProjectConfig) Validate() error {
	seenRepos := make(map[string]bool, len(c.Repositories))
	for _, r := range c.Repositories {
		if seenRepos[r.Alias] {
			return withField(ErrDuplicateRepositoryAlias, "alias", r.Alias)
		}
		seenRepos[r.Alias] = true
	}

	seenDeps := make(map[string]bool, len(c.Dependencies))
	for _, d := range c.Dependencies {
		if seenDeps[d.Name] {
			return withField(ErrDuplicateDependency, "name", d.Name)
		}
		seenDeps[d.Name] = true
	}

	return nil
}
