package hierarchy

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type graphSource struct {
	iri      string
	labels   map[string]string
	children map[string][]string
}

func (g graphSource) OntologyIRI() string                { return g.iri }
func (g graphSource) ClassLabels() map[string]string     { return g.labels }
func (g graphSource) ClassChildren() map[string][]string { return g.children }

func newSource(children map[string][]string) graphSource {
	return graphSource{iri: "http://example.org/onto", labels: map[string]string{}, children: children}
}

var treeSize = CounterFunc(func(n *Node) int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.Size
	}
	return total
})

func quietOptions(maxDepth, minSize int) Options {
	return Options{MaxDepth: maxDepth, MinSize: minSize, Logger: log.New(io.Discard)}
}

func childURIs(n *Node) []string {
	var uris []string
	for _, c := range n.Children {
		uris = append(uris, c.URI)
	}
	return uris
}

func TestBuild_SingleRoot(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B", "C"}, "B": {}, "C": {}})

	root, err := Build(src, treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if root.URI != "A" || root.Kind != KindClass {
		t.Fatalf("root = %q (%v), want A class node", root.URI, root.Kind)
	}
	if got := strings.Join(childURIs(root), ","); got != "B,C" {
		t.Errorf("children = %s, want B,C", got)
	}
	if root.Size != 2 {
		t.Errorf("A size = %d, want 2", root.Size)
	}
	for _, c := range root.Children {
		if c.Size != 1 {
			t.Errorf("%s size = %d, want 1", c.URI, c.Size)
		}
	}
}

func TestBuild_MultiRootWrapper(t *testing.T) {
	src := newSource(map[string][]string{"A": {}, "B": {}})

	root, stats, err := BuildWithStats(src, treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if root.Kind != KindWrapper {
		t.Fatalf("root kind = %v, want wrapper", root.Kind)
	}
	if root.URI != src.iri || root.Name != src.iri {
		t.Errorf("wrapper = %q/%q, want ontology IRI", root.URI, root.Name)
	}
	if got := strings.Join(childURIs(root), ","); got != "A,B" {
		t.Errorf("children = %s, want A,B", got)
	}
	if !stats.Wrapped || stats.Roots != 2 {
		t.Errorf("stats = %+v, want wrapped with 2 roots", stats)
	}
}

func TestBuild_EmptySource(t *testing.T) {
	root, err := Build(newSource(map[string][]string{}), treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.Kind != KindWrapper || len(root.Children) != 0 {
		t.Errorf("root = %+v, want empty wrapper", root)
	}
}

func TestBuild_SelfLoop(t *testing.T) {
	src := newSource(map[string][]string{"A": {"A"}})

	root, err := Build(src, treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.URI != "A" {
		t.Fatalf("root = %q, want A", root.URI)
	}
	if !root.IsLeaf() {
		t.Errorf("A has %d children, want 0", len(root.Children))
	}
	if root.Size != 1 {
		t.Errorf("A size = %d, want 1", root.Size)
	}
}

func TestBuild_CycleIsBroken(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"A"}})

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = log.New(&buf)

	root, stats, err := BuildWithStats(src, treeSize, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if root.URI != "A" {
		t.Fatalf("root = %q, want A", root.URI)
	}
	if stats.BackEdges != 1 {
		t.Errorf("BackEdges = %d, want 1", stats.BackEdges)
	}
	if root.Depth() != 2 {
		t.Errorf("depth = %d, want 2 (A -> B -> C)", root.Depth())
	}
	if root.Size != 1 {
		t.Errorf("A size = %d, want 1", root.Size)
	}
	if !strings.Contains(buf.String(), "cycle") {
		t.Errorf("expected cycle warning in log, got %q", buf.String())
	}
}

func TestBuild_CycleBelowRoot(t *testing.T) {
	// R is the only true root; B and C form a cycle beneath it.
	src := newSource(map[string][]string{"R": {"B"}, "B": {"C"}, "C": {"B", "D"}, "D": {}})

	root, stats, err := BuildWithStats(src, treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.URI != "R" {
		t.Fatalf("root = %q, want R", root.URI)
	}
	if stats.BackEdges != 1 {
		t.Errorf("BackEdges = %d, want 1", stats.BackEdges)
	}
	if root.Size != 1 {
		t.Errorf("R size = %d, want 1", root.Size)
	}
}

func TestBuild_UnknownChildOmitted(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B", "owl:Nothing"}, "B": {}})

	root, err := Build(src, treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := strings.Join(childURIs(root), ","); got != "B" {
		t.Errorf("children = %s, want B", got)
	}
}

func TestBuild_DuplicateChildEdges(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B", "B"}, "B": {}})

	root, err := Build(src, treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(root.Children) != 1 {
		t.Errorf("children = %d, want 1", len(root.Children))
	}
}

func TestBuild_Labels(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B"}, "B": {}})
	src.labels = map[string]string{"A": "animal"}

	root, err := Build(src, treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.Name != "animal" {
		t.Errorf("A name = %q, want animal", root.Name)
	}
	if root.Children[0].Name != "" {
		t.Errorf("B name = %q, want empty", root.Children[0].Name)
	}
}

// wideSource is a three-level tree with uneven fan-out used by the property
// tests below.
func wideSource() graphSource {
	return newSource(map[string][]string{
		"root": {"a", "b", "c"},
		"a":    {"a1", "a2", "a3"},
		"a1":   {"a1x", "a1y"},
		"a2":   {},
		"a3":   {},
		"a1x":  {},
		"a1y":  {},
		"b":    {"b1"},
		"b1":   {},
		"c":    {},
	})
}

func TestBuild_StructuralSizes(t *testing.T) {
	root, err := Build(wideSource(), treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	root.Walk(func(n *Node, _ int) bool {
		want := 1
		if !n.IsLeaf() {
			want = 0
			for _, c := range n.Children {
				want += c.Size
			}
		}
		if n.Size != want {
			t.Errorf("%s size = %d, want %d", n.URI, n.Size, want)
		}
		return true
	})
	if root.Size != 6 {
		t.Errorf("root size = %d, want 6 leaves", root.Size)
	}
}

func TestBuild_Prune(t *testing.T) {
	full, err := Build(wideSource(), treeSize, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	fullSizes := map[string]int{}
	full.Walk(func(n *Node, _ int) bool {
		fullSizes[n.URI] = n.Size
		return true
	})

	for _, depth := range []int{0, 1, 2, 3} {
		root, err := Build(wideSource(), treeSize, quietOptions(depth, NoGrouping))
		if err != nil {
			t.Fatalf("Build(depth=%d) error: %v", depth, err)
		}
		root.Walk(func(n *Node, d int) bool {
			if d >= depth && !n.IsLeaf() {
				t.Errorf("depth=%d: %s at depth %d still has children", depth, n.URI, d)
			}
			if n.Size != fullSizes[n.URI] {
				t.Errorf("depth=%d: %s size = %d, want %d", depth, n.URI, n.Size, fullSizes[n.URI])
			}
			return true
		})
		if got := root.Depth(); got > depth {
			t.Errorf("depth=%d: tree depth = %d", depth, got)
		}
	}
}

func TestBuild_PruneZeroDepth(t *testing.T) {
	root, stats, err := BuildWithStats(wideSource(), treeSize, quietOptions(0, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !root.IsLeaf() {
		t.Error("root should have no children at max depth 0")
	}
	if root.Size != 6 {
		t.Errorf("root size = %d, want 6", root.Size)
	}
	if stats.Pruned != 1 {
		t.Errorf("Pruned = %d, want 1", stats.Pruned)
	}
}

func TestBuild_GroupingExample(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B", "C"}, "B": {}, "C": {"D"}, "D": {}})
	src.labels = map[string]string{"A": "Root"}

	root, err := Build(src, treeSize, quietOptions(Unlimited, 2))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if root.Size != 2 {
		t.Errorf("A size = %d, want 2", root.Size)
	}
	if len(root.Children) != 1 {
		t.Fatalf("A has %d children, want 1", len(root.Children))
	}
	other := root.Children[0]
	if !other.IsAggregate() || other.Name != "Other Root" || other.Size != 2 {
		t.Errorf("aggregate = %+v, want \"Other Root\" of size 2", other)
	}
	if other.URI != "" || !other.IsLeaf() {
		t.Errorf("aggregate should have no URI and no children: %+v", other)
	}
}

func TestBuild_GroupingProperties(t *testing.T) {
	for _, minSize := range []int{1, 2, 3, 4} {
		root, stats, err := BuildWithStats(wideSource(), treeSize, quietOptions(Unlimited, minSize))
		if err != nil {
			t.Fatalf("Build(minSize=%d) error: %v", minSize, err)
		}
		root.Walk(func(n *Node, _ int) bool {
			aggregates := 0
			total := 0
			for _, c := range n.Children {
				total += c.Size
				if c.IsAggregate() {
					aggregates++
					continue
				}
				if c.Size < minSize {
					t.Errorf("minSize=%d: %s has child %s of size %d", minSize, n.URI, c.URI, c.Size)
				}
			}
			if aggregates > 1 {
				t.Errorf("minSize=%d: %s has %d aggregates", minSize, n.URI, aggregates)
			}
			if !n.IsLeaf() && total != n.Size {
				t.Errorf("minSize=%d: %s children sum %d, size %d", minSize, n.URI, total, n.Size)
			}
			return true
		})
		if root.Size != 6 {
			t.Errorf("minSize=%d: root size = %d, want 6", minSize, root.Size)
		}
		if minSize == 1 && stats.Grouped != 0 {
			t.Errorf("minSize=1 should group nothing, grouped %d", stats.Grouped)
		}
	}
}

func TestBuild_GroupingSkipsZeroSum(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B", "C"}, "B": {}, "C": {}})
	sizes := map[string]int{"B": 0, "C": 5}
	counter := CounterFunc(func(n *Node) int {
		total := sizes[n.URI]
		for _, c := range n.Children {
			total += c.Size
		}
		return total
	})

	root, err := Build(src, counter, quietOptions(Unlimited, 1))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := strings.Join(childURIs(root), ","); got != "C" {
		t.Errorf("children = %s, want C only", got)
	}
	if _, ok := root.Aggregate(); ok {
		t.Error("zero-sum grouping should not add an aggregate")
	}
}

func TestBuild_SharedClassCountedOnceAndDetached(t *testing.T) {
	src := newSource(map[string][]string{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}, "D": {"E"}, "E": {}})

	calls := map[string]int{}
	counter := CounterFunc(func(n *Node) int {
		calls[n.URI]++
		return treeSize(n)
	})

	root, stats, err := BuildWithStats(src, counter, quietOptions(Unlimited, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for uri, n := range calls {
		if n != 1 {
			t.Errorf("%s counted %d times, want 1", uri, n)
		}
	}

	b, _ := root.Child("B")
	c, _ := root.Child("C")
	db, _ := b.Child("D")
	dc, _ := c.Child("D")
	if db == nil || dc == nil {
		t.Fatal("D should be a child of both B and C")
	}
	if db == dc {
		t.Error("shared class should be copied, not shared, in the output tree")
	}
	if db.Size != dc.Size || db.Size != 1 {
		t.Errorf("D sizes = %d/%d, want 1/1", db.Size, dc.Size)
	}
	if root.Size != 2 {
		t.Errorf("A size = %d, want 2 (shared leaf counted per path)", root.Size)
	}
	if stats.Copies == 0 {
		t.Error("expected at least one copy")
	}

	seen := map[*Node]bool{}
	root.Walk(func(n *Node, _ int) bool {
		if seen[n] {
			t.Errorf("node %s appears twice in the tree", n.URI)
		}
		seen[n] = true
		return true
	})
}

func TestBuild_SharedClassPrunedOnOnePath(t *testing.T) {
	// D is reached at depth 1 via A and at depth 2 via B; pruning at depth 2
	// must clear D only on the deeper path.
	src := newSource(map[string][]string{"A": {"B", "D"}, "B": {"D"}, "D": {"E"}, "E": {}})

	root, err := Build(src, treeSize, quietOptions(2, NoGrouping))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	shallow, _ := root.Child("D")
	b, _ := root.Child("B")
	deep, _ := b.Child("D")
	if shallow == nil || deep == nil {
		t.Fatal("D should appear under A and B")
	}
	if len(shallow.Children) != 1 {
		t.Errorf("D at depth 1 has %d children, want 1", len(shallow.Children))
	}
	if !deep.IsLeaf() {
		t.Error("D at depth 2 should be pruned")
	}
	if deep.Size != 1 {
		t.Errorf("pruned D size = %d, want 1", deep.Size)
	}
}

func TestBuild_Errors(t *testing.T) {
	src := newSource(map[string][]string{"A": {}})

	tests := []struct {
		name    string
		src     Source
		counter Counter
		opts    Options
		want    error
	}{
		{"nil source", nil, treeSize, DefaultOptions(), ErrNilSource},
		{"nil counter", src, nil, DefaultOptions(), ErrNilCounter},
		{"bad depth", src, treeSize, Options{MaxDepth: -2, MinSize: -1}, ErrInvalidOptions},
		{"bad size", src, treeSize, Options{MaxDepth: -1, MinSize: -5}, ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.src, tt.counter, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAutoMinSize(t *testing.T) {
	tests := []struct {
		labels int
		want   int
	}{
		{0, 0},
		{99, 0},
		{1000, 10},
		{25000, 250},
		{50000, 500},
		{120000, 500},
	}

	for _, tt := range tests {
		if got := AutoMinSize(tt.labels); got != tt.want {
			t.Errorf("AutoMinSize(%d) = %d, want %d", tt.labels, got, tt.want)
		}
	}
}
