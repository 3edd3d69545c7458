package domain

// SourceKind discriminates the variant a Source holds.
type SourceKind string

// Recognized source kinds. The kind is part of a resolved node's identity:
// two nodes with the same name but different sources are distinct.
const (
	SourceKindRepository SourceKind = "repository"
	SourceKindVCS         SourceKind = "vcs"
	SourceKindLocalPath   SourceKind = "local_path"
	SourceKindRemoteURL   SourceKind = "remote_url"
	SourceKindBuiltin     SourceKind = "builtin"
)

// DistributionKind distinguishes a repository candidate offering compiled
// binaries from one offering only source.
type DistributionKind string

// The two distribution kinds a repository candidate can have.
const (
	DistributionSource DistributionKind = "source"
	DistributionBinary DistributionKind = "binary"
)

// VCSRefKind discriminates which field of a VersionControl source pins
// the checkout.
type VCSRefKind string

// The three ways a VersionControl source may pin a checkout.
const (
	VCSRefBranch VCSRefKind = "branch"
	VCSRefTag    VCSRefKind = "tag"
	VCSRefCommit VCSRefKind = "commit"
)

// Source is a sum type over the five places a package version can come
// from. Exactly one of the embedded value pointers is non-nil.
type Source struct {
	Kind       SourceKind
	Repository *RepositorySource
	VCS        *VCSSource
	LocalPath  *LocalPathSource
	RemoteURL  *RemoteURLSource
	Builtin    *BuiltinSource
}

// RepositorySource identifies a package archive served by a configured
// repository alias.
type RepositorySource struct {
	Alias      string
	Kind       DistributionKind
	URL        string
	SHA256     string
}

// VCSSource pins a package to a version-control checkout.
type VCSSource struct {
	URL          string
	RefKind      VCSRefKind
	Ref          string
	Subdirectory string
	CommitSHA    string
}

// LocalPathSource references an on-disk directory or tarball.
type LocalPathSource struct {
	Path string
}

// RemoteURLSource references a raw tarball URL outside any repository.
type RemoteURLSource struct {
	URL    string
	SHA256 string
}

// BuiltinSource records that a name is supplied by the platform itself
// and requires no fetch or install.
type BuiltinSource struct {
	Version Version
}

// NewRepositorySource builds a Source wrapping a RepositorySource.
func NewRepositorySource(s RepositorySource) Source {
	return Source{Kind: SourceKindRepository, Repository: &s}
}

// NewVCSSource builds a Source wrapping a VCSSource.
func NewVCSSource(s VCSSource) Source {
	return Source{Kind: SourceKindVCS, VCS: &s}
}

// NewLocalPathSource builds a Source wrapping a LocalPathSource.
func NewLocalPathSource(s LocalPathSource) Source {
	return Source{Kind: SourceKindLocalPath, LocalPath: &s}
}

// NewRemoteURLSource builds a Source wrapping a RemoteURLSource.
func NewRemoteURLSource(s RemoteURLSource) Source {
	return Source{Kind: SourceKindRemoteURL, RemoteURL: &s}
}

// NewBuiltinSource builds a Source wrapping a BuiltinSource.
func NewBuiltinSource(s BuiltinSource) Source {
	return Source{Kind: SourceKindBuiltin, Builtin: &s}
}

// Equal reports whether two sources are identical in every field relevant
// to reproducibility. Content-addressable fields (SHA) participate.
func (s Source) Equal(other Source) bool {
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case SourceKindRepository:
		return *s.Repository == *other.Repository
	case SourceKindVCS:
		return *s.VCS == *other.VCS
	case SourceKindLocalPath:
		return *s.LocalPath == *other.LocalPath
	case SourceKindRemoteURL:
		return *s.RemoteURL == *other.RemoteURL
	case SourceKindBuiltin:
		return s.Builtin.Version.Equal(other.Builtin.Version)
	default:
		return false
	}
}

// String renders a short human-readable description of the source,
// used in diagnostics and plan output.
func (s Source) String() string {
	switch s.Kind {
	case SourceKindRepository:
		return string(s.Repository.Kind) + "@" + s.Repository.Alias
	case SourceKindVCS:
		return "git:" + s.VCS.URL + "@" + s.VCS.Ref
	case SourceKindLocalPath:
		return "path:" + s.LocalPath.Path
	case SourceKindRemoteURL:
		return "url:" + s.RemoteURL.URL
	case SourceKindBuiltin:
		return "builtin@" + s.Builtin.Version.String()
	default:
		return "unknown"
	}
}
