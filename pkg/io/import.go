package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tburdett/owl2json/pkg/dag"
)

// ReadJSON decodes a JSON class graph from r into a DAG.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "meta": {"iri": "http://example.org/zoo.owl"},
//	  "nodes": [{"id": "http://example.org/animal", "meta": {"label": "animal"}}],
//	  "edges": [{"from": "http://example.org/animal", "to": "http://example.org/bird"}]
//	}
//
// Each node must have an "id". Optional node fields are "kind" ("obsolete")
// and "meta". Each edge must reference declared node IDs. Unknown kinds are
// read as regular classes.
//
// Cycles are not rejected here: ontologies may assert equivalent classes,
// and callers decide how to deal with them. Errors are wrapped with the node
// or edge that caused them. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New(data.Meta)
	for _, n := range data.Nodes {
		nd := dag.Node{ID: n.ID, Meta: n.Meta}
		if n.Kind == kindObsolete {
			nd.Kind = dag.NodeKindObsolete
		}
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	for _, p := range data.Disjoint {
		if _, ok := g.Node(p.From); !ok {
			return nil, fmt.Errorf("disjoint %s/%s: %w", p.From, p.To, dag.ErrUnknownSourceNode)
		}
		if _, ok := g.Node(p.To); !ok {
			return nil, fmt.Errorf("disjoint %s/%s: %w", p.From, p.To, dag.ErrUnknownTargetNode)
		}
		g.AddDisjoint(p.From, p.To)
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded DAG.
// It returns the same errors as [ReadJSON], plus file errors wrapped with
// the path.
func ImportJSON(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
