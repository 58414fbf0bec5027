// Package render turns built hierarchies into human-readable outputs.
//
// # Overview
//
// The JSON document written by package hierarchy is the primary output of a
// conversion. The subpackages here produce secondary views of the same tree,
// useful for checking what pruning and grouping did before the JSON is fed
// to a treemap:
//
//   - [text]: an indented tree, one line per node, with sizes
//   - [nodelink]: Graphviz DOT source and SVG diagrams
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG produced by nodelink using the external
// rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//
// [text]: github.com/tburdett/owl2json/pkg/render/text
// [nodelink]: github.com/tburdett/owl2json/pkg/render/nodelink
package render
