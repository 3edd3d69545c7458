package domain

import (
	"iter"
	"sort"
)

// Graph is a name-keyed dependency graph over resolved nodes, used both
// by the resolver to track visitation and by the sync engine to derive a
// parallel execution order (§4.H). Unlike a strict DAG, depends/imports
// cycles among repository packages are tolerated (§4.E "Cyclic
// dependencies"): Order breaks such cycles by lexicographic name rather
// than failing.
type Graph struct {
	nodes map[string]ResolvedNode
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]ResolvedNode)}
}

// AddNode inserts or replaces a node keyed by name.
func (g *Graph) AddNode(n ResolvedNode) {
	g.nodes[n.Name] = n
}

// Node returns the node for name, if present.
func (g *Graph) Node(name string) (ResolvedNode, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Order returns a total order over the graph's names: a topological
// order wherever the subgraph is acyclic, with any remaining cyclic
// residue appended in lexicographic order once no more prerequisite-free
// nodes remain. This matches §5's "lexicographic name order provides
// deterministic scheduling" tie-break while still terminating on cycles.
func (g *Graph) Order() []string {
	inDegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))

	for name, n := range g.nodes {
		if _, ok := inDegree[name]; !ok {
			inDegree[name] = 0
		}
		for _, dep := range n.Deps {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	remaining := make(map[string]bool, len(g.nodes))
	for name := range g.nodes {
		remaining[name] = true
	}

	var order []string
	for len(remaining) > 0 {
		var ready []string
		for name := range remaining {
			if inDegree[name] == 0 {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			// Cyclic residue: break the tie by picking the lexicographically
			// smallest remaining name and treat it as satisfied.
			ready = remainingSorted(remaining)
			ready = ready[:1]
		} else {
			sort.Strings(ready)
		}

		for _, name := range ready {
			order = append(order, name)
			delete(remaining, name)
			for _, dep := range dependents[name] {
				if remaining[dep] {
					inDegree[dep]--
				}
			}
		}
	}

	return order
}

func remainingSorted(remaining map[string]bool) []string {
	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Walk returns an iterator yielding nodes in Order().
func (g *Graph) Walk() iter.Seq[ResolvedNode] {
	return func(yield func(ResolvedNode) bool) {
		for _, name := range g.Order() {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}
