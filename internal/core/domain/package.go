package domain

// PackageRecord is the parsed form of one package-description block, as
// produced by the descriptor parser (§4.B) from a repository index entry
// or an installed package's own metadata file.
type PackageRecord struct {
	Name             string
	Version          Version
	Dependencies     []Dependency
	Remotes          []RemoteOverride
	NeedsCompilation bool
}

// DependenciesOf returns the dependency entries belonging to the given
// class.
func (p PackageRecord) DependenciesOf(class DependencyClass) []Dependency {
	var out []Dependency
	for _, d := range p.Dependencies {
		if d.Class == class {
			out = append(out, d)
		}
	}
	return out
}

// RemoteFor returns the remote override this record declares for the
// given dependency name, if any.
func (p PackageRecord) RemoteFor(name string) (RemoteOverride, bool) {
	for _, r := range p.Remotes {
		if r.DependencyName == name {
			return r, true
		}
	}
	return RemoteOverride{}, false
}

// RepositoryCandidate is one version of a package as offered by a
// repository database lookup: enough to fetch and to compare against
// other candidates for the same name.
type RepositoryCandidate struct {
	Name             string
	Version          Version
	Distribution     DistributionKind
	RepoAlias        string
	URL              string
	SHA256           string
	Dependencies     []Dependency
	NeedsCompilation bool
	Remotes          []RemoteOverride
}
