package ontology

import (
	"context"

	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/integrations"
)

// Fetcher downloads an ontology document by IRI.
type Fetcher interface {
	Fetch(ctx context.Context, iri string) ([]byte, error)
}

// FetcherFunc adapts a function to the [Fetcher] interface.
type FetcherFunc func(ctx context.Context, iri string) ([]byte, error)

// Fetch calls f(ctx, iri).
func (f FetcherFunc) Fetch(ctx context.Context, iri string) ([]byte, error) { return f(ctx, iri) }

// HTTPFetcher resolves ontology IRIs over HTTP, retrying transient failures.
//
// Raw documents are not cached: [Load] caches the parsed class graph
// instead, which is much smaller than the source document.
type HTTPFetcher struct {
	*integrations.Client
}

// NewHTTPFetcher returns a fetcher that prefers OBO and JSON documents.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: integrations.NewClient(nil, "ontology", 0, map[string]string{
			"Accept": "text/obo, application/json;q=0.9, */*;q=0.1",
		}),
	}
}

// Fetch downloads iri. Not-found responses are returned as
// [integrations.ErrNotFound] without retrying.
func (f *HTTPFetcher) Fetch(ctx context.Context, iri string) ([]byte, error) {
	var text string
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		text, err = f.GetText(ctx, iri)
		return err
	})
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}
