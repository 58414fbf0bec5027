package hierarchy

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

type jsonNode struct {
	URI      string      `json:"uri,omitempty"`
	Name     string      `json:"name"`
	Children []*jsonNode `json:"children,omitempty"`
	Size     int         `json:"size,omitempty"`
}

// SortChildren orders the children of every node in the tree: descending
// size, then name, then URI, with aggregates last.
func SortChildren(root *Node) {
	root.Walk(func(n *Node, _ int) bool {
		slices.SortStableFunc(n.Children, compareNodes)
		return true
	})
}

func compareNodes(a, b *Node) int {
	if a.IsAggregate() != b.IsAggregate() {
		if a.IsAggregate() {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Size, a.Size); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.URI, b.URI)
}

func toJSON(n *Node) *jsonNode {
	out := &jsonNode{URI: n.URI, Name: n.Name, Size: n.Size}
	if len(n.Children) > 0 {
		kids := slices.Clone(n.Children)
		slices.SortStableFunc(kids, compareNodes)
		out.Children = make([]*jsonNode, len(kids))
		for i, c := range kids {
			out.Children[i] = toJSON(c)
		}
	}
	return out
}

func fromJSON(j *jsonNode) *Node {
	n := &Node{URI: j.URI, Name: j.Name, Size: j.Size, Kind: KindClass}
	if j.URI == "" && strings.HasPrefix(j.Name, aggregatePrefix) && len(j.Children) == 0 {
		n.Kind = KindAggregate
	}
	if len(j.Children) > 0 {
		n.Children = make([]*Node, len(j.Children))
		for i, c := range j.Children {
			n.Children[i] = fromJSON(c)
		}
	}
	return n
}

// MarshalJSON encodes the tree rooted at n as a compact JSON document.
// The tree itself is not modified.
func MarshalJSON(n *Node) ([]byte, error) {
	data, err := json.Marshal(toJSON(n))
	if err != nil {
		return nil, fmt.Errorf("encode hierarchy: %w", err)
	}
	return data, nil
}

// WriteJSON encodes the tree rooted at n to w. When indent is true the
// output is indented by two spaces per level.
func WriteJSON(w io.Writer, n *Node, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(toJSON(n)); err != nil {
		return fmt.Errorf("encode hierarchy: %w", err)
	}
	return nil
}

// ReadJSON decodes a document written by [WriteJSON]. Nodes without a URI
// whose name starts with "Other " are restored as aggregates.
func ReadJSON(r io.Reader) (*Node, error) {
	var doc jsonNode
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode hierarchy: %w", err)
	}
	return fromJSON(&doc), nil
}
