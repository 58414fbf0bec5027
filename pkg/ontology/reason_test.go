package ontology

import (
	"testing"

	"github.com/tburdett/owl2json/pkg/dag"
)

func graphOf(edges ...dag.Edge) *dag.DAG {
	g := dag.New(nil)
	for _, e := range edges {
		g.EnsureNode(e.From)
		g.EnsureNode(e.To)
		_ = g.AddEdge(e)
	}
	return g
}

func TestReason_BreaksEquivalenceCycle(t *testing.T) {
	g := graphOf(
		dag.Edge{From: "root", To: "a"},
		dag.Edge{From: "a", To: "b"},
		dag.Edge{From: "b", To: "a"},
	)
	if err := Reason(g, quiet()); err != nil {
		t.Fatalf("Reason: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("graph still cyclic: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
}

func TestReason_ObsoleteClassSubtree(t *testing.T) {
	g := graphOf(
		dag.Edge{From: "root", To: "kept"},
		dag.Edge{From: ObsoleteClassIRI, To: "retired"},
		dag.Edge{From: "retired", To: "retired_child"},
	)
	if err := Reason(g, quiet()); err != nil {
		t.Fatalf("Reason: %v", err)
	}
	for _, id := range []string{ObsoleteClassIRI, "retired", "retired_child"} {
		if _, ok := g.Node(id); ok {
			t.Errorf("%s should have been removed", id)
		}
	}
	if _, ok := g.Node("kept"); !ok {
		t.Error("kept class was removed")
	}
}

func TestReason_GenusEdges(t *testing.T) {
	g := graphOf(dag.Edge{From: "animal", To: "bird"})
	penguin := g.EnsureNode("penguin")
	penguin.Meta[metaGenus] = []any{"bird", "penguin"}

	if err := Reason(g, nil); err != nil {
		t.Fatalf("Reason: %v", err)
	}
	if !g.HasEdge("bird", "penguin") {
		t.Error("genus should become a superclass")
	}
	if g.HasEdge("penguin", "penguin") {
		t.Error("self genus should be ignored")
	}
}
