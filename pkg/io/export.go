package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/tburdett/owl2json/pkg/dag"
)

const kindObsolete = "obsolete"

type graph struct {
	Meta     dag.Metadata `json:"meta,omitempty"`
	Nodes    []node       `json:"nodes"`
	Edges    []edge       `json:"edges"`
	Disjoint []edge       `json:"disjoint,omitempty"`
}

type node struct {
	ID   string       `json:"id"`
	Kind string       `json:"kind,omitempty"`
	Meta dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a DAG as JSON and writes it to w.
// Nodes and edges are written in sorted order, so equal graphs produce equal
// documents. Graph metadata goes to the top-level "meta" object, except the
// disjoint pairs, which get their own "disjoint" array.
func WriteJSON(g *dag.DAG, w io.Writer) error {
	nodes := g.Nodes()
	edges := g.Edges()
	out := graph{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}

	if meta := maps.Clone(g.Meta()); len(meta) > 0 {
		delete(meta, dag.MetaDisjoint)
		if len(meta) > 0 {
			out.Meta = meta
		}
	}
	for i, n := range nodes {
		nd := node{ID: n.ID}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		if n.IsObsolete() {
			nd.Kind = kindObsolete
		}
		out.Nodes[i] = nd
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}
	for _, p := range g.Disjoint() {
		out.Disjoint = append(out.Disjoint, edge{From: p.From, To: p.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a DAG to a JSON file at path.
func ExportJSON(g *dag.DAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
