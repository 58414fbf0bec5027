package zooma

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tburdett/owl2json/pkg/cache"
	owlerrors "github.com/tburdett/owl2json/pkg/errors"
	"github.com/tburdett/owl2json/pkg/integrations"
)

const sampleResponse = `{
  "head": {"vars": ["semantictag", "datapoints"]},
  "results": {
    "bindings": [
      {"semantictag": {"type": "uri", "value": "http://www.ebi.ac.uk/efo/EFO_0000311"},
       "datapoints": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#integer", "value": "42"}},
      {"semantictag": {"type": "uri", "value": "http://www.ebi.ac.uk/efo/EFO_0000305"},
       "datapoints": {"type": "literal", "value": 8}},
      {"semantictag": {"type": "uri", "value": "http://www.ebi.ac.uk/efo/EFO_0000001"},
       "datapoints": {"type": "literal", "value": "0"}}
    ]
  }
}`

func TestClient_FetchCounts(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("query")
		if r.URL.Query().Get("format") != "JSON" {
			t.Errorf("format = %q, want JSON", r.URL.Query().Get("format"))
		}
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	c := testClient(t, server)

	counts, err := c.FetchCounts(context.Background(), "", true)
	if err != nil {
		t.Fatalf("FetchCounts failed: %v", err)
	}
	if counts.Datasource != DefaultDatasource {
		t.Errorf("Datasource = %q, want default", counts.Datasource)
	}
	if got := counts.Terms["http://www.ebi.ac.uk/efo/EFO_0000311"]; got != 42 {
		t.Errorf("EFO_0000311 = %d, want 42", got)
	}
	if got := counts.Terms["http://www.ebi.ac.uk/efo/EFO_0000305"]; got != 8 {
		t.Errorf("EFO_0000305 = %d, want 8", got)
	}
	if counts.Datapoints != 50 {
		t.Errorf("Datapoints = %d, want 50", counts.Datapoints)
	}
	if counts.Annotated() != 2 {
		t.Errorf("Annotated() = %d, want 2", counts.Annotated())
	}
	if !strings.Contains(gotQuery, "FILTER (?source = <http://www.genome.gov/gwastudies>)") {
		t.Errorf("query does not filter on the datasource:\n%s", gotQuery)
	}
}

func TestClient_FetchCountsCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	c := testClient(t, server)
	ctx := context.Background()

	for range 3 {
		if _, err := c.FetchCounts(ctx, DefaultDatasource, false); err != nil {
			t.Fatalf("FetchCounts failed: %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	if _, err := c.FetchCounts(ctx, DefaultDatasource, true); err != nil {
		t.Fatalf("FetchCounts failed: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("refresh should bypass the cache, server hit %d times", hits.Load())
	}
}

func TestClient_FetchCountsNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(t, server).FetchCounts(context.Background(), "", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchCountsBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {"bindings": [`))
	}))
	defer server.Close()

	if _, err := testClient(t, server).FetchCounts(context.Background(), "", true); err == nil {
		t.Error("expected decoding error")
	}
}

func TestClient_FetchCountsSkipsMalformedRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {"bindings": [
			{"semantictag": {"value": "http://x.org/A"}, "datapoints": {"value": "many"}},
			{"semantictag": {"value": ""}, "datapoints": {"value": "3"}},
			{"semantictag": {"value": "http://x.org/B"}, "datapoints": {"value": "-2"}},
			{"datapoints": {"value": "4"}},
			{"semantictag": {"value": "http://x.org/C"}, "datapoints": {"value": "5"}}
		]}}`))
	}))
	defer server.Close()

	counts, err := testClient(t, server).FetchCounts(context.Background(), "", true)
	if err != nil {
		t.Fatalf("FetchCounts failed: %v", err)
	}
	if counts.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", counts.Skipped)
	}
	if len(counts.Terms) != 1 || counts.Terms["http://x.org/C"] != 5 {
		t.Errorf("Terms = %v, want only C=5", counts.Terms)
	}
}

func TestClient_FetchCountsInvalidDatasource(t *testing.T) {
	c := NewClient(nil, time.Hour)
	_, err := c.FetchCounts(context.Background(), "not an iri", false)
	if !owlerrors.Is(err, owlerrors.ErrCodeInvalidIRI) {
		t.Errorf("expected INVALID_IRI, got %v", err)
	}
}

func TestValidateDatasource(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{DefaultDatasource, false},
		{"http://www.ebi.ac.uk/arrayexpress", false},
		{"", true},
		{"gwas", true},
		{"http://x.org/a> } DROP {", true},
		{"http://x.org/<a>", true},
	}

	for _, tt := range tests {
		if err := ValidateDatasource(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateDatasource(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestQueryURL(t *testing.T) {
	u, err := QueryURL("http://zooma.test/api/", DefaultDatasource)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "http://zooma.test/api/query?") {
		t.Errorf("unexpected URL prefix: %s", u)
	}
	for _, want := range []string{"format=JSON", "inference=false", "gwastudies"} {
		if !strings.Contains(u, want) {
			t.Errorf("URL missing %q: %s", want, u)
		}
	}
}

func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewClientWithBaseURL(c, time.Hour, server.URL)
}
