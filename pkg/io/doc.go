// Package io provides JSON import and export for class graphs.
//
// # Overview
//
// The graph-JSON format is the simplest way to feed an ontology to owl2json
// without an OBO file: any tool that can list classes and their direct
// superclasses can produce it. It is also handy for saving a reasoned graph
// and re-running conversions against it.
//
// # JSON Format
//
//	{
//	  "meta": {"iri": "http://example.org/zoo.owl"},
//	  "nodes": [
//	    {"id": "http://example.org/animal", "meta": {"label": "animal"}},
//	    {"id": "http://example.org/bird", "meta": {"label": "bird", "synonyms": ["aves"]}},
//	    {"id": "http://example.org/dodo", "kind": "obsolete"}
//	  ],
//	  "edges": [
//	    {"from": "http://example.org/animal", "to": "http://example.org/bird"}
//	  ],
//	  "disjoint": [
//	    {"from": "http://example.org/bird", "to": "http://example.org/fish"}
//	  ]
//	}
//
// Edges point from superclass to subclass. "meta", "kind" and "disjoint"
// are optional.
//
// # Metadata Keys
//
//   - meta.iri (graph): ontology IRI, used to name a root wrapper
//   - meta.label (node): display label
//   - meta.synonyms (node): list of alternative labels
//
// Other keys are carried through untouched.
//
// # Import and Export
//
// [ReadJSON] and [WriteJSON] work on any reader or writer; [ImportJSON] and
// [ExportJSON] are file-path conveniences. Export sorts nodes and edges, so
// importing and re-exporting a graph gives the same document.
package io
