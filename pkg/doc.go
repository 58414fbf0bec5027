// Package pkg holds the libraries behind owl2json.
//
// # Overview
//
// owl2json reads an ontology's class hierarchy and writes it as a JSON tree
// in which every node carries a size: the number of leaves beneath it, or
// the number of data annotations mapped to it and its subclasses. Trees can
// be cut at a depth and small branches folded into "Other ..." nodes, which
// keeps them small enough for sunburst and treemap views.
//
// # Data Flow
//
//	ontology document (OBO, graph JSON)
//	         ↓
//	    [ontology] parse, classify → [dag] class graph
//	         ↓
//	    [counter] per-class counts (tree size, CSV, ZOOMA, MongoDB)
//	         ↓
//	    [hierarchy] construct, count, prune, group
//	         ↓
//	    [pipeline] JSON tree plus [render] text, DOT, SVG, PDF, PNG
//
// # Packages
//
//   - [dag], [dag/transform]: class graph and reasoning transforms
//   - [io]: graph JSON import and export
//   - [ontology]: format detection, OBO parsing, loading and caching
//   - [counter]: count sources and the counters built on them
//   - [hierarchy]: the tree builder and its JSON form
//   - [render/text], [render/nodelink]: text trees and Graphviz diagrams
//   - [integrations], [integrations/zooma]: HTTP clients with cache and retry
//   - [cache]: file, Redis and no-op caches with TTLs
//   - [errors]: coded errors and input validation
//   - [observability]: hooks for load, count, build and render events
//   - [pipeline]: the complete conversion used by the CLI
//
// # Testing
//
//	go test ./...                        # unit tests
//	go test -tags integration ./...      # also hits ZOOMA, Redis and MongoDB
//
// [dag]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/dag/transform
// [io]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/io
// [ontology]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/ontology
// [counter]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/counter
// [hierarchy]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/hierarchy
// [render]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/render
// [render/text]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/render/text
// [render/nodelink]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/render/nodelink
// [integrations]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/integrations
// [integrations/zooma]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/integrations/zooma
// [cache]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/cache
// [errors]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/errors
// [observability]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/tburdett/owl2json/pkg/pipeline
package pkg
