package ontology

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tburdett/owl2json/pkg/dag"
	"github.com/tburdett/owl2json/pkg/dag/transform"
	"github.com/tburdett/owl2json/pkg/errors"
)

// maxReported caps how many unsatisfiable classes an error message names.
const maxReported = 5

// Reason classifies a class graph in place, so that each class's children
// are exactly its direct inferred subclasses.
//
// The passes are:
//   - genus classes from intersection_of become superclasses
//   - classes that descend from both members of a disjoint pair fail the
//     run with ErrCodeInconsistent
//   - classes filed under [ObsoleteClassIRI] are marked obsolete, and all
//     obsolete classes are removed with their children reattached
//   - cycles of equivalent classes are broken
//   - transitive reduction drops subclass edges that are already implied
//
// This is structural classification over named classes only; it does not
// evaluate class expressions beyond intersection genus.
func Reason(g *dag.DAG, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	genus := 0
	for _, n := range g.Nodes() {
		for _, parent := range stringsOf(n.Meta[metaGenus]) {
			if parent == n.ID {
				continue
			}
			g.EnsureNode(parent)
			if !g.HasEdge(parent, n.ID) {
				_ = g.AddEdge(dag.Edge{From: parent, To: n.ID})
				genus++
			}
		}
	}

	logger.Debug("checking for unsatisfiable classes", "disjoint_pairs", len(g.Disjoint()))
	if bad := transform.Unsatisfiable(g, g.Disjoint()); len(bad) > 0 {
		iri, _ := g.Meta()[dag.MetaIRI].(string)
		shown := bad
		if len(shown) > maxReported {
			shown = shown[:maxReported]
		}
		return errors.New(errors.ErrCodeInconsistent,
			"once classified, %d unsatisfiable classes were detected in %q: %s",
			len(bad), iri, strings.Join(shown, ", "))
	}

	if _, ok := g.Node(ObsoleteClassIRI); ok {
		g.EnsureNode(ObsoleteClassIRI).Kind = dag.NodeKindObsolete
		for id := range g.Descendants(ObsoleteClassIRI) {
			g.EnsureNode(id).Kind = dag.NodeKindObsolete
		}
	}

	res := transform.Normalize(g)
	logger.Debug("reasoning complete",
		"genus_edges", genus,
		"obsolete_removed", res.ObsoleteRemoved,
		"cycles_broken", res.CyclesRemoved,
		"redundant_edges", res.TransitiveEdgesRemoved)
	return nil
}
