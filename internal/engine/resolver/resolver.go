// Package resolver implements the multi-source dependency resolver
// (§4.E): the breadth-first work queue over depends/imports/linking-to/
// suggests edges, the five-tier lookup priority, and conflict reporting.
package resolver

import (
	"context"
	"sort"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
)

var _ ports.Resolver = (*Resolver)(nil)

// Resolver computes a resolved closure for a project configuration.
type Resolver struct{}

// New builds a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// workItem is one entry in the breadth-first work queue: a name pulled
// in by class from parent, carrying its own constraint contribution.
type workItem struct {
	name       string
	constraint domain.Constraint
	class      domain.DependencyClass
	parent     string
	remote     *domain.RemoteOverride
}

// contributor records one constraint placed on a name, for diagnostics.
type contributor struct {
	from       string
	constraint domain.Constraint
}

func (r *Resolver) Resolve(ctx context.Context, input ports.ResolutionInput) ([]domain.ResolvedNode, error) {
	run := &resolution{
		input:       input,
		configByName: configIndex(input.Config.Dependencies),
		resolved:    make(map[string]*domain.ResolvedNode),
		contribs:    make(map[string][]contributor),
	}
	return run.execute(ctx)
}

func configIndex(deps []domain.DependencyOption) map[string]domain.DependencyOption {
	idx := make(map[string]domain.DependencyOption, len(deps))
	for _, d := range deps {
		idx[d.Name] = d
	}
	return idx
}

type resolution struct {
	input        ports.ResolutionInput
	configByName map[string]domain.DependencyOption
	resolved     map[string]*domain.ResolvedNode
	contribs     map[string][]contributor
	unresolved   []ports.UnresolvedName
}

func (rs *resolution) execute(ctx context.Context) ([]domain.ResolvedNode, error) {
	queue := rs.seed()

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sort.Slice(queue, func(i, j int) bool { return queue[i].name < queue[j].name })
		item := queue[0]
		queue = queue[1:]

		next := rs.process(ctx, item)
		queue = append(queue, next...)
	}

	if len(rs.unresolved) > 0 {
		return nil, &ports.ResolutionFailure{Unresolved: rs.unresolved}
	}

	return rs.closure(), nil
}

// seed builds the initial work queue from the top-level dependency list,
// sorted for a deterministic starting frontier.
func (rs *resolution) seed() []workItem {
	deps := append([]domain.DependencyOption(nil), rs.input.Config.Dependencies...)
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })

	items := make([]workItem, 0, len(deps))
	for _, d := range deps {
		constraint, _ := domain.ParseConstraint(d.VersionConstraint)
		items = append(items, workItem{name: d.Name, constraint: constraint, class: domain.ClassDepends, parent: ""})
	}
	return items
}

// process resolves one work item and returns the further work items it
// implies. Errors are recorded on rs.unresolved rather than returned, so
// the caller can continue and report every failure atomically.
func (rs *resolution) process(ctx context.Context, item workItem) []workItem {
	from := item.parent
	if from == "" {
		from = "<top-level>"
	}
	rs.contribs[item.name] = append(rs.contribs[item.name], contributor{from: from, constraint: item.constraint})

	if existing, ok := rs.resolved[item.name]; ok {
		if !item.constraint.Satisfies(existing.Version) {
			rs.recordConflict(item.name)
			return nil
		}
		addClassUsed(existing, item.class)
		return nil
	}

	sel, err := rs.selectCandidate(ctx, item.name, rs.mergedConstraint(item.name), item.remote)
	if err != nil {
		rs.recordFailure(item.name, err.Error())
		return nil
	}

	node := sel.node
	node.ClassesUsed = []domain.DependencyClass{item.class}

	items := rs.enqueueDependants(sel, node)
	depNames := make([]string, 0, len(items))
	for _, it := range items {
		depNames = append(depNames, it.name)
	}
	sort.Strings(depNames)
	node.Deps = depNames

	rs.resolved[item.name] = node
	return items
}

// mergedConstraint intersects every constraint contributed so far for name.
func (rs *resolution) mergedConstraint(name string) domain.Constraint {
	var merged domain.Constraint
	for _, c := range rs.contribs[name] {
		merged = merged.And(c.constraint)
	}
	return merged
}

func (rs *resolution) enqueueDependants(sel *selection, node *domain.ResolvedNode) []workItem {
	installSuggestions := rs.installSuggestionsFor(node.Name)
	buildingFromSource := node.Distribution == domain.DistributionSource

	var items []workItem
	for _, d := range sel.dependencies {
		if !dependencyApplies(d.Class, buildingFromSource, installSuggestions) {
			continue
		}
		item := workItem{name: d.Name, constraint: d.Constraint, class: d.Class, parent: node.Name}
		if r, ok := sel.remotes[d.Name]; ok {
			item.remote = &r
		}
		items = append(items, item)
	}
	return items
}

// dependencyApplies decides whether a dependency edge is followed, per
// §4.E step 3: depends+imports always, linking-to only when the parent
// is built from source, suggests only when install_suggestions is set.
func dependencyApplies(class domain.DependencyClass, buildingFromSource, installSuggestions bool) bool {
	switch class {
	case domain.ClassDepends, domain.ClassImports:
		return true
	case domain.ClassLinkingTo:
		return buildingFromSource
	case domain.ClassSuggests:
		return installSuggestions
	default:
		return false
	}
}

func (rs *resolution) installSuggestionsFor(name string) bool {
	if opt, ok := rs.configByName[name]; ok {
		return opt.InstallSuggestions
	}
	return false
}

func addClassUsed(node *domain.ResolvedNode, class domain.DependencyClass) {
	for _, c := range node.ClassesUsed {
		if c == class {
			return
		}
	}
	node.ClassesUsed = append(node.ClassesUsed, class)
}

func (rs *resolution) recordConflict(name string) {
	rs.recordFailure(name, "conflicting version constraints")
}

func (rs *resolution) recordFailure(name, reason string) {
	for _, u := range rs.unresolved {
		if u.Name == name {
			return
		}
	}

	constraints := make([]domain.Constraint, 0, len(rs.contribs[name]))
	contributors := make([]string, 0, len(rs.contribs[name]))
	for _, c := range rs.contribs[name] {
		constraints = append(constraints, c.constraint)
		contributors = append(contributors, c.from)
	}

	rs.unresolved = append(rs.unresolved, ports.UnresolvedName{
		Name:         name,
		Reason:       reason,
		Contributors: contributors,
		Constraints:  constraints,
		AvailableAt:  rs.availabilityFor(name),
	})
}

// availabilityFor collects the versions offered for name at each
// configured repository, for the failure diagnostic.
func (rs *resolution) availabilityFor(name string) map[string][]domain.Version {
	out := make(map[string][]domain.Version)
	for _, repo := range rs.input.Config.Repositories {
		idx, ok := rs.input.Databases[repo.Alias]
		if !ok || idx == nil {
			continue
		}
		var versions []domain.Version
		for _, c := range idx.Lookup(name) {
			versions = append(versions, c.Version)
		}
		if len(versions) > 0 {
			out[repo.Alias] = versions
		}
	}
	return out
}

// closure returns the resolved nodes as a slice, sorted by name for a
// deterministic result.
func (rs *resolution) closure() []domain.ResolvedNode {
	names := make([]string, 0, len(rs.resolved))
	for name := range rs.resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.ResolvedNode, 0, len(names))
	for _, name := range names {
		out = append(out, *rs.resolved[name])
	}
	return out
}
