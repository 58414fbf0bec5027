// Package integrations provides HTTP clients for the remote services owl2json
// reads from.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [zooma]: ZOOMA annotation store, queried for per-term datapoint counts
//
// Ontology documents themselves are fetched through [Client.GetText] by the
// ontology loader.
//
// # Client Pattern
//
// Service clients embed [Client] and expose one fetch method:
//
//	client := zooma.NewClient(c, 24*time.Hour)      // cache backend, TTL
//	counts, err := client.FetchCounts(ctx, ds, false) // false = use cache
//
// Clients handle:
//   - HTTP requests with retry on 5xx and connection errors
//   - Response caching through any [cache.Cache] backend
//   - Service-specific parsing and normalization
//
// # Errors
//
// [ErrNotFound] and [ErrNetwork] are the same sentinels as in package cache,
// so callers can test with errors.Is regardless of which layer failed.
//
// [zooma]: github.com/tburdett/owl2json/pkg/integrations/zooma
// [cache.Cache]: github.com/tburdett/owl2json/pkg/cache.Cache
package integrations
