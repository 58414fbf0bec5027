// Package nodelink renders hierarchies as node-link diagrams.
//
// # Overview
//
// Each tree node becomes a box labelled with its name and size, connected
// to its children by arrows. Aggregate "Other ..." nodes are drawn dashed
// and grey, and a synthetic root wrapper is drawn bold.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// A shared class copied into several branches appears once per branch, since
// the input is a tree. Large, unpruned hierarchies make very large diagrams;
// render them after depth pruning.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
