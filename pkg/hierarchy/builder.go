package hierarchy

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
)

const (
	// Unlimited disables depth pruning when used as Options.MaxDepth.
	Unlimited = -1
	// NoGrouping disables size grouping when used as Options.MinSize.
	NoGrouping = -1

	// maxAutoMinSize caps the threshold computed by [AutoMinSize].
	maxAutoMinSize = 500
)

var (
	// ErrNilSource is returned by [Build] when no class graph is supplied.
	ErrNilSource = errors.New("hierarchy: nil source")

	// ErrNilCounter is returned by [Build] when no counter is supplied.
	ErrNilCounter = errors.New("hierarchy: nil counter")

	// ErrInvalidOptions is returned when MaxDepth or MinSize is below -1.
	ErrInvalidOptions = errors.New("hierarchy: invalid options")
)

// Source is the class graph a tree is built from.
//
// Every class the ontology knows about must appear as a key of
// ClassChildren, with an empty slice for leaf classes. Child identities that
// are not keys are ignored.
type Source interface {
	OntologyIRI() string
	ClassLabels() map[string]string
	ClassChildren() map[string][]string
}

// Counter assigns a size to a node. Count is called once per node, after
// every child of the node has been sized, and must return a value >= 0.
type Counter interface {
	Count(n *Node) int
}

// CounterFunc adapts a function to the [Counter] interface.
type CounterFunc func(n *Node) int

// Count calls f(n).
func (f CounterFunc) Count(n *Node) int { return f(n) }

// Options controls pruning and grouping.
//
// The zero value prunes everything below the root; start from
// [DefaultOptions] instead.
type Options struct {
	// MaxDepth clears the children of nodes at this depth (root is depth 0).
	// Use Unlimited to keep the full tree.
	MaxDepth int
	// MinSize folds children smaller than this into one aggregate per parent.
	// Use NoGrouping to keep every child.
	MinSize int
	// Logger receives cycle warnings and pass summaries. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns options that keep the full, ungrouped tree.
func DefaultOptions() Options {
	return Options{MaxDepth: Unlimited, MinSize: NoGrouping}
}

// Validate reports whether the options are usable.
func (o Options) Validate() error {
	if o.MaxDepth < Unlimited {
		return fmt.Errorf("%w: max depth %d (use -1 for unlimited)", ErrInvalidOptions, o.MaxDepth)
	}
	if o.MinSize < NoGrouping {
		return fmt.Errorf("%w: min size %d (use -1 to disable)", ErrInvalidOptions, o.MinSize)
	}
	return nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// AutoMinSize returns the grouping threshold used for "one percent" trees:
// one percent of the labelled class count, capped at 500.
func AutoMinSize(labelCount int) int {
	return min(maxAutoMinSize, labelCount/100)
}

// Stats summarizes what each pass of [BuildWithStats] did.
type Stats struct {
	Classes    int // classes turned into nodes
	BackEdges  int // subclass edges dropped to break cycles
	Roots      int // root classes found
	Wrapped    bool
	Pruned     int // nodes whose children were cleared
	Copies     int // shared classes copied while detaching the tree
	Grouped    int // children folded into aggregates
	Aggregates int // aggregate nodes created
	Nodes      int // nodes in the final tree
}

// Build constructs, counts, prunes and groups the hierarchy described by src.
func Build(src Source, c Counter, opts Options) (*Node, error) {
	root, _, err := BuildWithStats(src, c, opts)
	return root, err
}

// BuildWithStats is [Build] that also reports per-pass statistics.
func BuildWithStats(src Source, c Counter, opts Options) (*Node, Stats, error) {
	var stats Stats
	if src == nil {
		return nil, stats, ErrNilSource
	}
	if c == nil {
		return nil, stats, ErrNilCounter
	}
	if err := opts.Validate(); err != nil {
		return nil, stats, err
	}
	logger := opts.logger()

	root := construct(src, logger, &stats)
	templates := count(root, c)
	stats.Pruned, stats.Copies = prune(root, templates, opts.MaxDepth, logger)
	stats.Grouped, stats.Aggregates = group(root, opts.MinSize)
	stats.Nodes = root.Len()

	logger.Debug("built hierarchy",
		"classes", stats.Classes,
		"roots", stats.Roots,
		"back_edges", stats.BackEdges,
		"pruned", stats.Pruned,
		"grouped", stats.Grouped,
		"nodes", stats.Nodes)
	return root, stats, nil
}

// construct builds one node per class reachable in src and selects the root.
// The walk uses an explicit stack with in-progress and done marks; an edge to
// an in-progress class would close a cycle and is dropped.
func construct(src Source, logger *log.Logger, stats *Stats) *Node {
	const (
		unvisited = iota
		inProgress
		done
	)

	classChildren := src.ClassChildren()
	labels := src.ClassLabels()

	state := make(map[string]int, len(classChildren))
	nodes := make(map[string]*Node, len(classChildren))
	candidates := make(map[string]bool, len(classChildren))
	for id := range classChildren {
		candidates[id] = true
	}

	type frame struct {
		id    string
		kids  []string
		next  int
		built []*Node
	}
	newFrame := func(id string) *frame {
		kids := slices.Clone(classChildren[id])
		slices.Sort(kids)
		return &frame{id: id, kids: slices.Compact(kids)}
	}

	for _, start := range slices.Sorted(maps.Keys(classChildren)) {
		if state[start] != unvisited {
			continue
		}
		state[start] = inProgress
		stack := []*frame{newFrame(start)}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.next < len(f.kids) {
				child := f.kids[f.next]
				f.next++
				if child == f.id {
					continue
				}
				if _, known := classChildren[child]; !known {
					continue
				}
				switch state[child] {
				case inProgress:
					stats.BackEdges++
					logger.Warn("dropping subclass edge that closes a cycle", "parent", f.id, "child", child)
				case done:
					delete(candidates, child)
					f.built = append(f.built, nodes[child])
				default:
					delete(candidates, child)
					state[child] = inProgress
					stack = append(stack, newFrame(child))
				}
				continue
			}

			n := &Node{URI: f.id, Name: labels[f.id], Children: f.built, Kind: KindClass}
			nodes[f.id] = n
			state[f.id] = done
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.built = append(parent.built, n)
			}
		}
	}
	stats.Classes = len(nodes)

	roots := slices.Sorted(maps.Keys(candidates))
	stats.Roots = len(roots)
	if len(roots) == 1 {
		return nodes[roots[0]]
	}

	stats.Wrapped = true
	iri := src.OntologyIRI()
	wrapper := &Node{URI: iri, Name: iri, Kind: KindWrapper}
	for _, id := range roots {
		wrapper.Children = append(wrapper.Children, nodes[id])
	}
	logger.Debug("wrapping multiple roots", "ontology", iri, "roots", len(roots))
	return wrapper
}

// count sizes every node of the memoized graph in post-order, counting each
// shared node once. It returns a snapshot of every node's children, which
// prune uses as the template when it copies shared nodes.
func count(root *Node, c Counter) map[*Node][]*Node {
	type item struct {
		node     *Node
		expanded bool
	}
	templates := make(map[*Node][]*Node)
	stack := []item{{node: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.expanded {
			it.node.Size = c.Count(it.node)
			continue
		}
		if _, seen := templates[it.node]; seen {
			continue
		}
		templates[it.node] = slices.Clone(it.node.Children)
		stack = append(stack, item{node: it.node, expanded: true})
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			child := it.node.Children[i]
			if _, seen := templates[child]; !seen {
				stack = append(stack, item{node: child})
			}
		}
	}
	return templates
}

// prune clears children at maxDepth and detaches shared nodes so that every
// node object appears exactly once in the result. It returns the number of
// nodes pruned and the number of copies made.
func prune(root *Node, templates map[*Node][]*Node, maxDepth int, logger *log.Logger) (pruned, copies int) {
	type item struct {
		node  *Node
		depth int
	}
	claimed := map[*Node]bool{root: true}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := it.node

		if maxDepth != Unlimited && it.depth >= maxDepth {
			if len(n.Children) > 0 {
				logger.Debug("pruning subtree", "name", n.Name, "depth", it.depth, "size", n.Size)
				n.Children = nil
				pruned++
			}
			continue
		}

		for i, child := range n.Children {
			if claimed[child] {
				child = child.shallowCopy(templates[child])
				n.Children[i] = child
				copies++
			}
			claimed[child] = true
			stack = append(stack, item{child, it.depth + 1})
		}
	}
	return pruned, copies
}

// group folds children smaller than minSize into an aggregate, visiting
// children before their parents.
func group(root *Node, minSize int) (grouped, aggregates int) {
	if minSize <= 0 {
		return 0, 0
	}

	var order []*Node
	root.Walk(func(n *Node, _ int) bool {
		order = append(order, n)
		return true
	})

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.IsLeaf() {
			continue
		}
		kept := n.Children[:0:0]
		removed := 0
		sum := 0
		for _, c := range n.Children {
			if c.Size < minSize {
				removed++
				sum += c.Size
				continue
			}
			kept = append(kept, c)
		}
		if removed == 0 {
			continue
		}
		grouped += removed
		if sum > 0 {
			kept = append(kept, NewAggregate(n, sum))
			aggregates++
		}
		n.Children = kept
	}
	return grouped, aggregates
}
