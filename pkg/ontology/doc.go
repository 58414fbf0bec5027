// Package ontology loads ontology class hierarchies for owl2json.
//
// # Overview
//
// [Load] turns an ontology document into an [Ontology], which lists every
// class with its label, synonyms, superclass labels and direct subclasses.
// An Ontology is what hierarchy.Build consumes.
//
//	o, err := ontology.Load(ctx, ontology.Options{
//	    IRI:       "http://www.ebi.ac.uk/efo",
//	    File:      "efo.obo",
//	    Reasoning: true,
//	})
//
// # Formats
//
// Two document formats are read, chosen by file extension and then by
// content (see [Detect]):
//
//   - OBO 1.2/1.4 flat files ([OBOParser])
//   - the graph-JSON format of package io ([GraphJSONParser])
//
// RDF/XML and other OWL syntaxes are rejected with ErrCodeUnsupported.
//
// # Asserted and Reasoned Loading
//
// Without reasoning the hierarchy is exactly what the document asserts.
// With reasoning, [Reason] first classifies the graph: intersection genus
// classes become superclasses, unsatisfiable classes abort the load,
// obsolete classes are dropped, and redundant subclass edges are removed
// so that children are direct subclasses only.
//
// Classes with no label, or with more than one, are kept in the hierarchy
// but get no label; each one is logged as a warning.
//
// # Caching
//
// When Options.Cache is set, the parsed (and classified) class graph is
// cached in graph-JSON form, keyed by the IRI, load settings and a digest of
// the document. Re-running a conversion against an unchanged document skips
// parsing and reasoning.
package ontology
