package transform

import "github.com/tburdett/owl2json/pkg/dag"

// Result contains metrics about transformations applied by [Normalize].
//
// Result is useful for logging and for understanding how far an
// ontology's asserted hierarchy was from a clean tree of direct subclasses.
type Result struct {
	// ObsoleteRemoved is the number of deprecated classes removed.
	ObsoleteRemoved int

	// CyclesRemoved is the number of back-edges removed by cycle breaking.
	// Zero indicates the input was already acyclic.
	CyclesRemoved int

	// TransitiveEdgesRemoved is the number of redundant edges removed by
	// transitive reduction.
	TransitiveEdgesRemoved int
}

// Normalize removes obsolete classes, breaks cycles and applies transitive
// reduction, in that order.
func Normalize(g *dag.DAG) Result {
	var r Result
	r.ObsoleteRemoved = RemoveObsolete(g)
	r.CyclesRemoved = BreakCycles(g)
	r.TransitiveEdgesRemoved = TransitiveReduction(g)
	return r
}
