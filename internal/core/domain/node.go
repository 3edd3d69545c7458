package domain

// InstallOptions are the per-package options a configuration or a parent
// package's remote declaration can attach to a resolved node.
type InstallOptions struct {
	ForceSource        bool
	InstallSuggestions bool
	DependenciesOnly   bool
	ConfigureArgs      []string
	Env                map[string]string
}

// ResolvedNode is one package as fixed by a resolution: its identity
// (name + source), the flavor actually chosen, the dependency classes
// that pulled it in, and the options that govern how it is installed.
type ResolvedNode struct {
	Name             string
	Version          Version
	Source           Source
	Distribution     DistributionKind
	SHA256           string
	Deps             []string
	ClassesUsed      []DependencyClass
	InstallOptions   InstallOptions
}

// Key returns the identity tuple used to detect distinct resolutions of
// the same name (invariant 1 in §3: source is part of identity).
func (n ResolvedNode) Key() string {
	return n.Name + "@" + n.Source.String()
}

// UsesClass reports whether the node was pulled in via the given
// dependency class by at least one parent.
func (n ResolvedNode) UsesClass(c DependencyClass) bool {
	for _, cl := range n.ClassesUsed {
		if cl == c {
			return true
		}
	}
	return false
}
