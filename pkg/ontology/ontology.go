package ontology

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tburdett/owl2json/pkg/dag"
)

// Ontology is a loaded class hierarchy. It satisfies hierarchy.Source.
//
// Every class in the graph is a key of ClassChildren, including leaves and
// classes without a usable label. The maps are built once at load time and
// must not be modified by callers.
type Ontology struct {
	iri        string
	graph      *dag.DAG
	labels     map[string]string
	typeLabels map[string][]string
	synonyms   map[string][]string
	children   map[string][]string
}

// OntologyIRI returns the IRI the ontology declares, or the IRI it was
// loaded from when it declares none.
func (o *Ontology) OntologyIRI() string { return o.iri }

// ClassLabels maps each class with exactly one label to that label.
func (o *Ontology) ClassLabels() map[string]string { return o.labels }

// ClassChildren maps every class to its direct subclasses.
func (o *Ontology) ClassChildren() map[string][]string { return o.children }

// ClassSynonyms maps classes to their synonym annotation values.
// Classes without synonyms are absent.
func (o *Ontology) ClassSynonyms() map[string][]string { return o.synonyms }

// ClassTypeLabels maps every class to the labels of its superclasses:
// direct asserted superclasses, or all inferred ones when reasoning.
func (o *Ontology) ClassTypeLabels() map[string][]string { return o.typeLabels }

// Graph returns the class graph the maps were extracted from.
func (o *Ontology) Graph() *dag.DAG { return o.graph }

// ClassCount returns the number of classes.
func (o *Ontology) ClassCount() int { return len(o.children) }

// extract builds the lookup maps from a class graph. With inferred set, type
// labels cover all ancestors rather than direct parents.
func extract(g *dag.DAG, fallbackIRI string, inferred bool, logger *log.Logger) *Ontology {
	o := &Ontology{
		iri:        fallbackIRI,
		graph:      g,
		labels:     make(map[string]string),
		typeLabels: make(map[string][]string),
		synonyms:   make(map[string][]string),
		children:   make(map[string][]string, g.NodeCount()),
	}
	if iri, ok := g.Meta()[dag.MetaIRI].(string); ok && iri != "" {
		o.iri = iri
	}

	var labelled, synonymCount int
	for _, n := range g.Nodes() {
		switch labels := stringsOf(n.Meta[dag.MetaLabel]); len(labels) {
		case 0:
			logger.Warn("class has no label, no label will be loaded", "class", n.ID)
		case 1:
			o.labels[n.ID] = labels[0]
			labelled++
		default:
			logger.Warn("class has more than one label, no label will be loaded",
				"class", n.ID, "labels", labels)
		}

		if syns := n.Synonyms(); len(syns) > 0 {
			o.synonyms[n.ID] = slices.Compact(slices.Sorted(slices.Values(syns)))
			synonymCount += len(o.synonyms[n.ID])
		}

		var supers []string
		if inferred {
			supers = slices.Collect(maps.Keys(g.Ancestors(n.ID)))
		} else {
			supers = g.Parents(n.ID)
		}
		types := []string{}
		for _, s := range supers {
			if sn, ok := g.Node(s); ok {
				types = append(types, stringsOf(sn.Meta[dag.MetaLabel])...)
			}
		}
		slices.Sort(types)
		o.typeLabels[n.ID] = slices.Compact(types)

		kids := slices.Clone(g.Children(n.ID))
		slices.Sort(kids)
		o.children[n.ID] = kids
	}

	logger.Debug("extracted classes",
		"iri", o.iri,
		"classes", len(o.children),
		"labelled", labelled,
		"synonyms", synonymCount,
		"synonymed_classes", len(o.synonyms))
	return o
}
