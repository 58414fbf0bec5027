package transform

import (
	"slices"

	"github.com/tburdett/owl2json/pkg/dag"
)

// BreakCycles removes back-edges from the graph so that it becomes acyclic,
// and returns the number of edges removed.
//
// # Algorithm
//
// An iterative depth-first search with white/gray/black coloring starts from
// every source (sorted by ID), then from any node still unvisited, which
// covers components that are entirely cyclic. Children are visited in sorted
// order. An edge to a gray node closes a cycle and is removed; self-loops are
// removed the same way.
//
// Because both the start order and the child order are sorted, the same
// graph always loses the same edges.
//
// # Performance
//
// Time complexity is O(V + E log E) including the sorting. The explicit work
// stack keeps arbitrarily deep hierarchies off the goroutine stack.
func BreakCycles(g *dag.DAG) int {
	const (
		white = iota
		gray
		black
	)

	type frame struct {
		id   string
		kids []string
		next int
	}

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	visit := func(start string) {
		color[start] = gray
		stack := []frame{{id: start, kids: sortedChildren(g, start)}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.kids) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.kids[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child, kids: sortedChildren(g, child)})
			case gray:
				backEdges = append(backEdges, dag.Edge{From: top.id, To: child})
			}
		}
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e.From, e.To)
	}
	return len(backEdges)
}

func sortedChildren(g *dag.DAG, id string) []string {
	return slices.Sorted(slices.Values(g.Children(id)))
}
