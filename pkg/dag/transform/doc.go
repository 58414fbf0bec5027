// Package transform provides the graph transformations that turn an
// ontology's asserted subclass graph into its reasoned hierarchy.
//
// # Overview
//
// Asserted ontologies routinely contain things a clean hierarchy must not:
// deprecated classes, equivalence cycles, and subclass links that restate
// what another path already implies. [Normalize] removes all three:
//
//   - [RemoveObsolete] deletes deprecated classes, reattaching their children
//   - [BreakCycles] removes back-edges so the graph is acyclic
//   - [TransitiveReduction] removes redundant subclass edges
//
// [Unsatisfiable] is a separate check: it finds classes that descend from
// both members of a disjointness pair. Callers treat a non-empty result as an
// incoherent ontology.
//
// # Determinism
//
// All transformations visit nodes and children in sorted order, so the same
// input graph always produces the same output graph.
package transform
