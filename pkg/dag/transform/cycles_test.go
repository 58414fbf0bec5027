package transform

import (
	"strings"
	"testing"

	"github.com/tburdett/owl2json/pkg/dag"
)

// classGraph builds a graph from "parent>child" edge specs, adding nodes as
// they are mentioned.
func classGraph(t *testing.T, specs ...string) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for _, s := range specs {
		from, to, ok := strings.Cut(s, ">")
		if !ok {
			g.EnsureNode(s)
			continue
		}
		g.EnsureNode(from)
		g.EnsureNode(to)
		if err := g.AddEdge(dag.Edge{From: from, To: to}); err != nil {
			t.Fatalf("AddEdge(%s): %v", s, err)
		}
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name        string
		edges       []string
		wantRemoved int
		wantEdges   int
	}{
		{"empty", nil, 0, 0},
		{"lone class", []string{"thing"}, 0, 0},
		{"chain", []string{"thing>disease", "disease>cancer"}, 0, 2},
		{"diamond", []string{"thing>a", "thing>b", "a>leaf", "b>leaf"}, 0, 4},
		{"self loop", []string{"thing>thing"}, 1, 0},
		{"mutual subclasses", []string{"a>b", "b>a"}, 1, 1},
		{"triangle", []string{"a>b", "b>c", "c>a"}, 1, 2},
		{"two components", []string{"a>b", "b>a", "c>d", "d>c"}, 2, 2},
		{"cycle below root", []string{"thing>a", "a>b", "b>c", "c>a"}, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := classGraph(t, tt.edges...)
			if got := BreakCycles(g); got != tt.wantRemoved {
				t.Errorf("removed = %d, want %d", got, tt.wantRemoved)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("edges = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if err := g.Validate(); err != nil {
				t.Errorf("graph still cyclic: %v", err)
			}
		})
	}
}
