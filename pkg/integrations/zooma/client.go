package zooma

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/integrations"
)

// Counts holds per-term annotation counts for one datasource.
type Counts struct {
	Datasource string         `json:"datasource"`
	Terms      map[string]int `json:"terms"`      // term IRI -> distinct annotations
	Datapoints int            `json:"datapoints"` // sum over Terms
	Skipped    int            `json:"skipped"`    // result rows without a usable tag or count
}

// Annotated returns how many terms have at least one annotation.
func (c *Counts) Annotated() int {
	n := 0
	for _, v := range c.Terms {
		if v > 0 {
			n++
		}
	}
	return n
}

// Client queries the ZOOMA SPARQL endpoint.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a ZOOMA client using the public API.
//
// Parameters:
//   - backend: Cache backend for responses (nil disables caching)
//   - cacheTTL: How long query results are cached
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return NewClientWithBaseURL(backend, cacheTTL, DefaultBaseURL)
}

// NewClientWithBaseURL is NewClient against a different ZOOMA deployment.
func NewClientWithBaseURL(backend cache.Cache, cacheTTL time.Duration, baseURL string) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "zooma", cacheTTL, map[string]string{"Accept": "application/json"}),
		baseURL: baseURL,
	}
}

// FetchCounts runs the counts query for datasource and returns the counts
// keyed by term IRI. An empty datasource means [DefaultDatasource].
//
// If refresh is true, the cache is bypassed.
//
// Returns:
//   - Counts on success (Terms may be empty, never nil)
//   - an INVALID_IRI error if datasource is malformed
//   - [integrations.ErrNetwork] for HTTP failures
//   - a decoding error for a malformed response
func (c *Client) FetchCounts(ctx context.Context, datasource string, refresh bool) (*Counts, error) {
	if datasource == "" {
		datasource = DefaultDatasource
	}
	u, err := QueryURL(c.baseURL, datasource)
	if err != nil {
		return nil, err
	}

	var counts Counts
	err = c.Cached(ctx, datasource, refresh, &counts, func() error {
		return c.fetch(ctx, u, datasource, &counts)
	})
	if err != nil {
		return nil, err
	}
	if counts.Terms == nil {
		counts.Terms = map[string]int{}
	}
	return &counts, nil
}

func (c *Client) fetch(ctx context.Context, u, datasource string, counts *Counts) error {
	var resp queryResponse
	if err := c.Get(ctx, u, &resp); err != nil {
		return fmt.Errorf("zooma query for %s: %w", datasource, err)
	}

	*counts = Counts{Datasource: datasource, Terms: make(map[string]int, len(resp.Results.Bindings))}
	for _, b := range resp.Results.Bindings {
		tag := strings.TrimSpace(b.SemanticTag.Value)
		n, ok := parseCount(b.Datapoints.Value)
		if tag == "" || !ok {
			counts.Skipped++
			continue
		}
		counts.Terms[tag] = n
		counts.Datapoints += n
	}
	return nil
}

// parseCount reads a SPARQL integer literal, which may arrive as a JSON
// string or number.
func parseCount(raw json.RawMessage) (int, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// queryResponse is the SPARQL 1.1 JSON results format.
type queryResponse struct {
	Results struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

type binding struct {
	SemanticTag struct {
		Value string `json:"value"`
	} `json:"semantictag"`
	Datapoints struct {
		Value json.RawMessage `json:"value"`
	} `json:"datapoints"`
}
