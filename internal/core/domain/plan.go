package domain

import "sort"

// PlanAction categorizes what a sync run must do for one name, per the
// diff in §4.G.
type PlanAction string

// The four plan actions a name can be categorized under.
const (
	ActionUpToDate PlanAction = "up-to-date"
	ActionUpdate   PlanAction = "update"
	ActionInstall  PlanAction = "install"
	ActionRemove   PlanAction = "remove"
)

// PlanStep is one name's categorized action, carrying enough of the
// resolved node (when applicable) for the sync engine to act on it.
type PlanStep struct {
	Name     string
	Action   PlanAction
	Node     *ResolvedNode
	Installed *InstalledPackage
}

// Plan is the full partition of names produced by diffing a resolved
// closure against library state (§4.G). It is reported verbatim by
// `plan` mode and consumed by `sync` mode.
type Plan struct {
	Steps []PlanStep
}

// NewPlan diffs a resolved closure against the current library state.
// Builtins present in the library are never categorized for removal
// (invariant 5 in §3: builtins live outside the library's contract).
func NewPlan(resolved []ResolvedNode, library LibraryState) Plan {
	resolvedByName := make(map[string]ResolvedNode, len(resolved))
	for _, n := range resolved {
		resolvedByName[n.Name] = n
	}

	var steps []PlanStep

	for _, n := range resolved {
		n := n
		installed, ok := library.Installed[n.Name]
		switch {
		case !ok:
			steps = append(steps, PlanStep{Name: n.Name, Action: ActionInstall, Node: &n})
		case installed.Version.Equal(n.Version) && installed.SourceFingerprint == n.Source.String():
			installed := installed
			steps = append(steps, PlanStep{Name: n.Name, Action: ActionUpToDate, Node: &n, Installed: &installed})
		default:
			installed := installed
			steps = append(steps, PlanStep{Name: n.Name, Action: ActionUpdate, Node: &n, Installed: &installed})
		}
	}

	for name, installed := range library.Installed {
		if installed.Builtin {
			continue
		}
		if _, ok := resolvedByName[name]; ok {
			continue
		}
		installed := installed
		steps = append(steps, PlanStep{Name: name, Action: ActionRemove, Installed: &installed})
	}

	sort.Slice(steps, func(i, j int) bool { return steps[i].Name < steps[j].Name })

	return Plan{Steps: steps}
}

// Names returns the names categorized under the given action.
func (p Plan) Names(action PlanAction) []string {
	var out []string
	for _, s := range p.Steps {
		if s.Action == action {
			out = append(out, s.Name)
		}
	}
	return out
}

// IsEmpty reports whether the plan requires no changes.
func (p Plan) IsEmpty() bool {
	for _, s := range p.Steps {
		if s.Action != ActionUpToDate {
			return false
		}
	}
	return true
}
