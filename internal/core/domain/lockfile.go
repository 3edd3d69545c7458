package domain

import (
	"maps"
	"slices"
	"sort"
)

// LockfileSchemaVersion is the schema version this build writes and the
// only version it accepts on read. A mismatch is a hard rejection, never
// a silent migration (§4.F).
const LockfileSchemaVersion = 1

// LockfileRepository is one entry in the lockfile's repository list,
// carried forward in the configured order (§4.F).
type LockfileRepository struct {
	Alias       string
	URL         string
	ForceSource bool
}

// LockfileEntry is the serialized form of one ResolvedNode.
type LockfileEntry struct {
	Name           string
	Version        Version
	Source         Source
	Distribution   DistributionKind
	SHA256         string
	Deps           []string
	InstallOptions InstallOptions
}

// Lockfile is the canonical, durable record tying the resolver, the
// repository list, and the resolved closure together (§3, §4.F).
type Lockfile struct {
	SchemaVersion   int
	PlatformVersion Version
	Repositories    []LockfileRepository
	Entries         []LockfileEntry
}

// NewLockfile builds a Lockfile from a resolved configuration and closure,
// canonicalizing entry and dependency order for a deterministic
// serialization (§4.F "keys ordered, dependency lists sorted").
func NewLockfile(platformVersion Version, repos []LockfileRepository, nodes []ResolvedNode) Lockfile {
	entries := make([]LockfileEntry, 0, len(nodes))
	for _, n := range nodes {
		deps := append([]string(nil), n.Deps...)
		sort.Strings(deps)
		entries = append(entries, LockfileEntry{
			Name:           n.Name,
			Version:        n.Version,
			Source:         n.Source,
			Distribution:   n.Distribution,
			SHA256:         n.SHA256,
			Deps:           deps,
			InstallOptions: n.InstallOptions,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return Lockfile{
		SchemaVersion:   LockfileSchemaVersion,
		PlatformVersion: platformVersion,
		Repositories:    repos,
		Entries:         entries,
	}
}

// EntryByName returns the entry with the given name, if present.
func (l Lockfile) EntryByName(name string) (LockfileEntry, bool) {
	for _, e := range l.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return LockfileEntry{}, false
}

// Names returns the sorted set of resolved names the lockfile fixes.
func (l Lockfile) Names() []string {
	names := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two lockfiles are identical in every field that
// participates in serialization, supporting the round-trip and
// idempotence properties (§8).
func (l Lockfile) Equal(other Lockfile) bool {
	if l.SchemaVersion != other.SchemaVersion || !l.PlatformVersion.Equal(other.PlatformVersion) {
		return false
	}
	if len(l.Repositories) != len(other.Repositories) || len(l.Entries) != len(other.Entries) {
		return false
	}
	for i := range l.Repositories {
		if l.Repositories[i] != other.Repositories[i] {
			return false
		}
	}
	for i := range l.Entries {
		a, b := l.Entries[i], other.Entries[i]
		if a.Name != b.Name || !a.Version.Equal(b.Version) || !a.Source.Equal(b.Source) {
			return false
		}
		if a.Distribution != b.Distribution || a.SHA256 != b.SHA256 {
			return false
		}
		if len(a.Deps) != len(b.Deps) {
			return false
		}
		for j := range a.Deps {
			if a.Deps[j] != b.Deps[j] {
				return false
			}
		}
		oa, ob := a.InstallOptions, b.InstallOptions
		if oa.ForceSource != ob.ForceSource || oa.InstallSuggestions != ob.InstallSuggestions || oa.DependenciesOnly != ob.DependenciesOnly {
			return false
		}
		if !slices.Equal(oa.ConfigureArgs, ob.ConfigureArgs) || !maps.Equal(oa.Env, ob.Env) {
			return false
		}
	}
	return true
}
