// Package counter provides the [hierarchy.Counter] implementations owl2json
// sizes nodes with.
//
// # Counters
//
//   - [TreeSize] counts leaves: 1 for a leaf, otherwise the sum of its
//     children's sizes.
//   - [Lookup] adds an externally supplied per-class count to the sum of its
//     children's sizes, so every node reports the count of its whole subtree.
//
// # Count Sources
//
// A [Lookup] reads its counts once from a [Source]:
//
//   - [Table]: a local "identity,count" file
//   - [Zooma]: a SPARQL aggregation over the ZOOMA annotation store
//   - [Mongo]: the same aggregation as a MongoDB pipeline
//   - [Cached]: any of the above, memoized in a [cache.Cache]
//
// # Lifecycle
//
// [NewLookup] loads counts before returning, so a source failure is reported
// up front instead of surfacing halfway through a build. Calling
// [Lookup.Init] again never reloads; it logs a warning and returns the
// outcome of the first load.
//
// [hierarchy.Counter]: github.com/tburdett/owl2json/pkg/hierarchy.Counter
// [cache.Cache]: github.com/tburdett/owl2json/pkg/cache.Cache
package counter
