package domain

// DependencyClass is one of the five relationship kinds a package
// metadata record can declare toward another package.
type DependencyClass string

// The five dependency classes recognized by the platform's metadata
// format, in the order the resolver considers them.
const (
	ClassDepends   DependencyClass = "depends"
	ClassImports   DependencyClass = "imports"
	ClassLinkingTo DependencyClass = "linking_to"
	ClassSuggests  DependencyClass = "suggests"
	ClassEnhances  DependencyClass = "enhances"
)

// AlwaysRequired reports whether membership in this class alone forces
// closure inclusion regardless of install options.
func (c DependencyClass) AlwaysRequired() bool {
	return c == ClassDepends || c == ClassImports
}

// Dependency is one edge declared by a package metadata record: a name,
// the class of the relationship, and the version constraint (if any)
// placed on that name.
type Dependency struct {
	Name       string
	Class      DependencyClass
	Constraint Constraint
}

// RemoteOverride is a version-control pin a package's metadata declares
// for one of its own dependencies, redirecting resolution away from
// repositories unless the consumer opts out via PreferRepositoriesFor.
type RemoteOverride struct {
	DependencyName string
	VCS            VCSSource
}
