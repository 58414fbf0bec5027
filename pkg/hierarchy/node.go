package hierarchy

import "slices"

// Kind distinguishes class nodes from synthetic nodes created by the builder.
type Kind int

const (
	// KindClass is a node built from an ontology class.
	KindClass Kind = iota
	// KindAggregate is an "Other ..." node standing in for grouped children.
	// Aggregates have no URI and no children.
	KindAggregate
	// KindWrapper is the synthetic root created when the ontology has zero or
	// several root classes. Its URI and Name are the ontology IRI.
	KindWrapper
)

func (k Kind) String() string {
	switch k {
	case KindAggregate:
		return "aggregate"
	case KindWrapper:
		return "wrapper"
	default:
		return "class"
	}
}

// aggregatePrefix is prepended to the parent name to label aggregate nodes.
const aggregatePrefix = "Other "

// Node is one entry of the output tree.
//
// Size is only meaningful once the tree has been counted. After [Build]
// returns, Size of a class node is at least the sum of its children's sizes.
type Node struct {
	URI      string  // Class identity; empty for aggregates
	Name     string  // Display label; may be empty
	Children []*Node // Direct children, unique by URI
	Size     int     // Weight of this node and everything beneath it
	Kind     Kind
}

// NewAggregate returns the node that replaces the children of parent that
// were too small to show individually.
func NewAggregate(parent *Node, size int) *Node {
	return &Node{
		Name: aggregatePrefix + parent.Name,
		Size: size,
		Kind: KindAggregate,
	}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsAggregate reports whether the node was created by grouping.
func (n *Node) IsAggregate() bool { return n.Kind == KindAggregate }

// Child returns the direct child with the given URI.
func (n *Node) Child(uri string) (*Node, bool) {
	for _, c := range n.Children {
		if c.URI == uri && !c.IsAggregate() {
			return c, true
		}
	}
	return nil, false
}

// Aggregate returns the aggregate child of n, if grouping created one.
func (n *Node) Aggregate() (*Node, bool) {
	for _, c := range n.Children {
		if c.IsAggregate() {
			return c, true
		}
	}
	return nil, false
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node. The walk uses an explicit stack,
// so arbitrarily deep trees are safe.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.node, it.depth) {
			continue
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}

// Len returns the number of nodes in the tree rooted at n.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the length of the longest root-to-leaf path, counting edges.
func (n *Node) Depth() int {
	deepest := 0
	n.Walk(func(_ *Node, d int) bool {
		deepest = max(deepest, d)
		return true
	})
	return deepest
}

// shallowCopy returns a new node with the same fields and its own copy of
// the children slice.
func (n *Node) shallowCopy(children []*Node) *Node {
	c := *n
	c.Children = slices.Clone(children)
	return &c
}
