package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Ontology loaders use it for labels, synonyms and the ontology IRI.
// Metadata maps are never nil after AddNode or New.
type Metadata map[string]any

// Well-known metadata keys.
const (
	MetaLabel    = "label"    // node: display label (string)
	MetaSynonyms = "synonyms" // node: alternative labels ([]string)
	MetaIRI      = "iri"      // graph: ontology IRI (string)
	MetaDisjoint = "disjoint" // graph: disjoint class pairs ([]Edge)
)

// NodeKind distinguishes ordinary classes from ones kept only for reference.
type NodeKind int

const (
	// NodeKindRegular is an ordinary class.
	NodeKindRegular NodeKind = iota
	// NodeKindObsolete is a deprecated class. It stays in the graph so that
	// references resolve, but reasoning removes it.
	NodeKindObsolete
)

// Node is a vertex of the class graph.
//
// The zero value is not usable; ID must be set before adding to a DAG.
type Node struct {
	ID   string   // Class identity (IRI)
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
	Kind NodeKind
}

// IsObsolete reports whether the node is a deprecated class.
func (n Node) IsObsolete() bool { return n.Kind == NodeKindObsolete }

// Label returns the node's label metadata, or "" when unset.
func (n Node) Label() string {
	s, _ := n.Meta[MetaLabel].(string)
	return s
}

// Synonyms returns the node's synonym metadata. Both []string and the
// []any produced by JSON decoding are accepted; non-string entries are skipped.
func (n Node) Synonyms() []string {
	switch v := n.Meta[MetaSynonyms].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Disjoint returns the graph's disjoint class pairs, if any were recorded.
func (d *DAG) Disjoint() []Edge {
	pairs, _ := d.meta[MetaDisjoint].([]Edge)
	return pairs
}

// AddDisjoint records that classes a and b share no instances.
func (d *DAG) AddDisjoint(a, b string) {
	d.meta[MetaDisjoint] = append(d.Disjoint(), Edge{From: a, To: b})
}

// Edge is a directed parent → child (superclass → subclass) connection.
type Edge struct {
	From string
	To   string
}

// DAG is a directed graph of classes, where an edge points from a class to
// one of its direct subclasses. Despite the name it may hold cycles while
// being built; [DAG.Validate] and transform.BreakCycles deal with them.
//
// Edges are kept as adjacency sets, so duplicate edges collapse and removal
// costs O(degree).
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	outgoing map[string][]string // nodeID -> children IDs, insertion order
	incoming map[string][]string // nodeID -> parent IDs, insertion order
	edges    int
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	return nil
}

// EnsureNode returns the node with the given ID, adding a regular node
// first if it does not exist. It panics on an empty ID.
func (d *DAG) EnsureNode(id string) *Node {
	if n, ok := d.nodes[id]; ok {
		return n
	}
	if id == "" {
		panic(ErrInvalidNodeID)
	}
	n := &Node{ID: id, Meta: Metadata{}}
	d.nodes[id] = n
	return n
}

// RemoveNode deletes a node and every edge touching it.
// Removing a missing node is a no-op.
func (d *DAG) RemoveNode(id string) {
	if _, ok := d.nodes[id]; !ok {
		return
	}
	for _, c := range slices.Clone(d.outgoing[id]) {
		d.RemoveEdge(id, c)
	}
	for _, p := range slices.Clone(d.incoming[id]) {
		d.RemoveEdge(p, id)
	}
	delete(d.outgoing, id)
	delete(d.incoming, id)
	delete(d.nodes, id)
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist, or
// ErrUnknownTargetNode if the To node doesn't exist. Adding an edge that
// already exists is a no-op.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if d.HasEdge(e.From, e.To) {
		return nil
	}
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	d.edges++
	return nil
}

// HasEdge reports whether the edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	return slices.Contains(d.outgoing[from], to)
}

// RemoveEdge removes the edge from→to if it exists.
// No error is returned if the edge does not exist.
func (d *DAG) RemoveEdge(from, to string) {
	i := slices.Index(d.outgoing[from], to)
	if i < 0 {
		return
	}
	d.outgoing[from] = slices.Delete(d.outgoing[from], i, i+1)
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
	d.edges--
}

// Nodes returns all nodes in the graph, sorted by ID.
// The returned slice contains pointers to the actual node structs, so
// modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.nodes))
	for _, id := range slices.Sorted(maps.Keys(d.nodes)) {
		nodes = append(nodes, d.nodes[id])
	}
	return nodes
}

// Edges returns all edges sorted by From, then To.
func (d *DAG) Edges() []Edge {
	edges := make([]Edge, 0, d.edges)
	for _, from := range slices.Sorted(maps.Keys(d.outgoing)) {
		for _, to := range slices.Sorted(slices.Values(d.outgoing[from])) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return d.edges }

// Children returns the IDs of the node's direct subclasses in insertion
// order. The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of the node's direct superclasses in insertion
// order. The returned slice should not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Sources returns nodes with no incoming edges, sorted by ID.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.Nodes() {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, sorted by ID.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, n := range d.Nodes() {
		if len(d.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Descendants returns every node reachable from id, excluding id itself
// unless it lies on a cycle.
func (d *DAG) Descendants(id string) map[string]bool {
	return d.reach(id, d.outgoing)
}

// Ancestors returns every node that reaches id, excluding id itself unless
// it lies on a cycle.
func (d *DAG) Ancestors(id string) map[string]bool {
	return d.reach(id, d.incoming)
}

func (d *DAG) reach(id string, adj map[string][]string) map[string]bool {
	seen := make(map[string]bool)
	stack := slices.Clone(adj[id])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, adj[n]...)
	}
	return seen
}

// Validate returns ErrGraphHasCycle if the graph has a directed cycle.
// It runs in O(N+E) time using an iterative depth-first search.
func (d *DAG) Validate() error {
	const (
		white = iota
		gray
		black
	)

	type frame struct {
		id   string
		next int
	}

	color := make(map[string]int, len(d.nodes))
	for _, start := range slices.Sorted(maps.Keys(d.nodes)) {
		if color[start] != white {
			continue
		}
		color[start] = gray
		stack := []frame{{id: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			kids := d.outgoing[top.id]
			if top.next == len(kids) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := kids[top.next]
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			case gray:
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
