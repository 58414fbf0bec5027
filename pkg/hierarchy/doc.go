// Package hierarchy turns an ontology class graph into a pruned, size-annotated
// tree suitable for treemap and sunburst rendering.
//
// # Overview
//
// A [Source] supplies three things: the ontology IRI, a label per class, and
// the direct subclasses of every known class. [Build] walks that graph and
// produces a single rooted tree of [Node] values in four passes:
//
//  1. Construction: an iterative depth-first walk that memoizes one node per
//     class, skips self-edges, omits children that are not known classes and
//     drops any edge that would close a cycle.
//  2. Counting: a post-order pass that asks a [Counter] for every node's size
//     once its children are sized.
//  3. Pruning: a pre-order pass that clears the children of nodes sitting at
//     Options.MaxDepth while keeping their sizes.
//  4. Grouping: a post-order pass that folds children smaller than
//     Options.MinSize into a single "Other <parent>" aggregate.
//
// When the class graph has exactly one root, that class is the tree root.
// Otherwise a wrapper node named after the ontology IRI is created with every
// root as a child.
//
// # Shared Classes
//
// Classes with several parents are built once and counted once. Pruning
// detaches the result into a true tree: the first parent to reach a shared
// class keeps it, later parents receive copies carrying the same size. Sizes
// of shared branches therefore contribute to every ancestor path.
//
// # Serialization
//
// [WriteJSON] and [MarshalJSON] emit the nested document consumed by the
// visualization front end:
//
//	{"uri": "...", "name": "...", "children": [...], "size": 42}
//
// uri is omitted for aggregates, children for leaves and size when zero.
// Children are ordered by descending size so that output is deterministic.
package hierarchy
