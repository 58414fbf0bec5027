package text

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"

	"github.com/tburdett/owl2json/pkg/hierarchy"
)

// Options configures text tree rendering.
type Options struct {
	// ShowURI appends the class URI to each class line.
	ShowURI bool
}

// Write renders root as a text tree to w. Children are written in their
// current order; call hierarchy.SortChildren first for the canonical order.
func Write(w io.Writer, root *hierarchy.Node, opts Options) error {
	if root == nil {
		return nil
	}

	type item struct {
		node *hierarchy.Node
		out  *gtree.Node
	}
	top := gtree.NewRoot(line(root, opts))
	stack := []item{{root, top}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// gtree merges siblings with equal text, so repeated names get
		// their URI to keep them apart.
		seen := make(map[string]bool, len(it.node.Children))
		added := make([]item, 0, len(it.node.Children))
		for _, c := range it.node.Children {
			text := line(c, opts)
			if seen[text] && c.URI != "" && !opts.ShowURI {
				text = fmt.Sprintf("%s <%s>", text, c.URI)
			}
			seen[text] = true
			added = append(added, item{c, it.out.Add(text)})
		}
		for i := len(added) - 1; i >= 0; i-- {
			stack = append(stack, added[i])
		}
	}

	if err := gtree.OutputFromRoot(w, top); err != nil {
		return fmt.Errorf("render tree: %w", err)
	}
	return nil
}

func line(n *hierarchy.Node, opts Options) string {
	name := n.Name
	if name == "" {
		name = n.URI
	}
	if name == "" {
		name = "(unnamed)"
	}
	text := fmt.Sprintf("%s [%d]", name, n.Size)
	if opts.ShowURI && n.URI != "" && n.URI != name {
		text += " <" + n.URI + ">"
	}
	return text
}
