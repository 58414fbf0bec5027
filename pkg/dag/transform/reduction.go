package transform

import "github.com/tburdett/owl2json/pkg/dag"

// TransitiveReduction removes redundant edges from an acyclic graph and
// returns how many were removed.
//
// An edge (u, v) is redundant when v is also reachable from u through some
// other child of u. For example, if Animal→Bird, Bird→Owl and Animal→Owl
// all exist, then Animal→Owl is removed because Owl is already a subclass of
// Animal via Bird. What remains are direct subclass links only.
//
// # Algorithm
//
// For every node u, one depth-first search starting at u's grandchildren
// marks everything reachable by a path of length two or more; any child of u
// that gets marked is dropped. Memory is O(V) per search instead of the
// O(V²) a full reachability matrix would need, which matters for ontologies
// with tens of thousands of classes.
//
// # Preconditions
//
// The graph must be acyclic; run [BreakCycles] first. On a cyclic graph
// edges inside the cycle may be removed.
func TransitiveReduction(g *dag.DAG) int {
	removed := 0
	for _, u := range g.Nodes() {
		kids := g.Children(u.ID)
		if len(kids) < 2 {
			continue
		}

		deep := make(map[string]bool)
		var stack []string
		for _, c := range kids {
			stack = append(stack, g.Children(c)...)
		}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if deep[n] {
				continue
			}
			deep[n] = true
			stack = append(stack, g.Children(n)...)
		}

		var redundant []string
		for _, c := range kids {
			if deep[c] {
				redundant = append(redundant, c)
			}
		}
		for _, c := range redundant {
			g.RemoveEdge(u.ID, c)
			removed++
		}
	}
	return removed
}
