package transform

import (
	"maps"
	"slices"

	"github.com/tburdett/owl2json/pkg/dag"
)

// Unsatisfiable returns, sorted, the classes that are subclasses (directly,
// transitively, or by being the class itself) of both members of any
// disjoint pair. Such classes can have no instances, which makes the
// ontology incoherent.
//
// Pairs naming a class that is not in the graph are ignored.
func Unsatisfiable(g *dag.DAG, disjoint []dag.Edge) []string {
	bad := make(map[string]bool)
	for _, p := range disjoint {
		if _, ok := g.Node(p.From); !ok {
			continue
		}
		if _, ok := g.Node(p.To); !ok {
			continue
		}
		left := g.Descendants(p.From)
		left[p.From] = true
		right := g.Descendants(p.To)
		right[p.To] = true
		if len(right) < len(left) {
			left, right = right, left
		}
		for id := range left {
			if right[id] {
				bad[id] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(bad))
}

// RemoveObsolete deletes every obsolete node and returns how many were
// removed. The children of an obsolete class are re-attached to its
// parents, so that removing a deprecated intermediate class does not cut
// its subtree loose.
func RemoveObsolete(g *dag.DAG) int {
	removed := 0
	for _, n := range g.Nodes() {
		if !n.IsObsolete() {
			continue
		}
		parents := slices.Clone(g.Parents(n.ID))
		children := slices.Clone(g.Children(n.ID))
		g.RemoveNode(n.ID)
		for _, p := range parents {
			for _, c := range children {
				if p != c {
					_ = g.AddEdge(dag.Edge{From: p, To: c})
				}
			}
		}
		removed++
	}
	return removed
}
