// Package dag provides the directed class graph that ontology loaders build
// and reasoning transforms operate on.
//
// # Overview
//
// An ontology's subclass relation is a directed graph: an edge points from a
// class to one of its direct subclasses. In a well-formed ontology it is
// acyclic, but real ontologies contain equivalence cycles and redundant
// (transitive) assertions, so this package stores whatever it is given and
// leaves clean-up to the [transform] subpackage.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode] or
// [DAG.EnsureNode], and edges with [DAG.AddEdge]:
//
//	g := dag.New(dag.Metadata{dag.MetaIRI: "http://www.ebi.ac.uk/efo"})
//	g.AddNode(dag.Node{ID: "http://x.org/Animal", Meta: dag.Metadata{dag.MetaLabel: "Animal"}})
//	g.AddNode(dag.Node{ID: "http://x.org/Bird"})
//	g.AddEdge(dag.Edge{From: "http://x.org/Animal", To: "http://x.org/Bird"})
//
// Query the graph with [DAG.Children], [DAG.Parents], [DAG.Sources],
// [DAG.Descendants] and [DAG.Ancestors]. Use [DAG.Validate] to check for
// cycles.
//
// # Determinism
//
// [DAG.Nodes], [DAG.Edges], [DAG.Sources] and [DAG.Sinks] return results
// sorted by ID, so that anything derived from them is reproducible across
// runs regardless of map iteration order.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
//
// [transform]: github.com/tburdett/owl2json/pkg/dag/transform
package dag
