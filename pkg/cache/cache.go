// Package cache provides byte-oriented caching with TTLs for owl2json.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a Redis server, for sharing counts between machines
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//
// Keys are derived by a [Keyer] so that HTTP responses, count tables and
// parsed ontologies never collide.
package cache

import (
	"context"
	"strings"
	"time"
)

// Default lifetimes for cached artifacts.
const (
	TTLHTTP     = 24 * time.Hour     // raw service responses
	TTLCounts   = 24 * time.Hour     // count tables from remote or database backings
	TTLOntology = 7 * 24 * time.Hour // parsed class graphs; keys include a content digest
)

// Cache stores opaque byte values under string keys.
//
// Get returns hit=false with a nil error when the key is missing or expired.
// A ttl of zero or less stores the value without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for each kind of cached artifact.
type Keyer interface {
	// HTTPKey is the key for a raw HTTP response in a client namespace.
	HTTPKey(namespace, key string) string
	// CountsKey is the key for a count table fetched from a backing service.
	CountsKey(backing, qualifier string) string
	// OntologyKey is the key for a parsed class graph.
	OntologyKey(iri string, opts OntologyKeyOpts) string
}

// OntologyKeyOpts lists the load settings that change a parsed class graph.
type OntologyKeyOpts struct {
	Reasoning  bool   `json:"reasoning"`
	SynonymIRI string `json:"synonym_iri,omitempty"`
	Digest     string `json:"digest,omitempty"` // content hash of a local ontology file
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CountsKey returns a hashed key for the given backing and qualifier.
func (DefaultKeyer) CountsKey(backing, qualifier string) string {
	return hashKey("counts:"+strings.ToLower(backing), qualifier)
}

// OntologyKey returns a hashed key covering the IRI and load settings.
func (DefaultKeyer) OntologyKey(iri string, opts OntologyKeyOpts) string {
	return hashKey("ontology", iri, opts)
}

var _ Keyer = DefaultKeyer{}
