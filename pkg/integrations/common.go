package integrations

import (
	"net/http"
	"time"

	"github.com/tburdett/owl2json/pkg/cache"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a remote resource doesn't exist.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with a standard timeout for service requests.
// Ontology files and annotation queries can be large, so the timeout is
// more generous than a typical JSON API call.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
