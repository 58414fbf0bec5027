package ontology

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/dag"
	"github.com/tburdett/owl2json/pkg/errors"
	graphio "github.com/tburdett/owl2json/pkg/io"
	"github.com/tburdett/owl2json/pkg/observability"
)

// DefaultSynonymIRI is the EFO alternative_term annotation property.
const DefaultSynonymIRI = "http://www.ebi.ac.uk/efo/alternative_term"

const sniffSize = 4096

// Options configures [Load].
type Options struct {
	// IRI identifies the ontology. Required.
	IRI string
	// File, when set, is read instead of fetching IRI.
	File string
	// SynonymIRI names the annotation property holding synonyms.
	// Empty uses DefaultSynonymIRI.
	SynonymIRI string
	// Reasoning classifies the graph before extraction. See [Reason].
	Reasoning bool
	// Fetcher downloads IRI when File is empty.
	Fetcher Fetcher

	// Cache, when set, stores the extracted class graph for CacheTTL.
	Cache    cache.Cache
	Keyer    cache.Keyer
	CacheTTL time.Duration
	// Refresh skips cache reads.
	Refresh bool

	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.SynonymIRI == "" {
		o.SynonymIRI = DefaultSynonymIRI
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	return o
}

// Load reads, parses and optionally classifies an ontology.
//
// Failures are fatal to a conversion run and carry one of the codes
// ErrCodeInvalidIRI, ErrCodeOntologyLoad, ErrCodeUnsupported or
// ErrCodeInconsistent.
func Load(ctx context.Context, opts Options) (o *Ontology, err error) {
	opts = opts.withDefaults()
	if err := errors.ValidateIRI(opts.IRI); err != nil {
		return nil, err
	}
	if err := errors.ValidateIRI(opts.SynonymIRI); err != nil {
		return nil, err
	}

	source := opts.IRI
	if opts.File != "" {
		source = opts.File
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	defer func() {
		classes := 0
		if o != nil {
			classes = o.ClassCount()
		}
		hooks.OnLoadComplete(ctx, source, classes, time.Since(start), err)
	}()

	data, err := read(ctx, opts)
	if err != nil {
		return nil, err
	}

	key := opts.Keyer.OntologyKey(opts.IRI, cache.OntologyKeyOpts{
		Reasoning:  opts.Reasoning,
		SynonymIRI: opts.SynonymIRI,
		Digest:     cache.Hash(data),
	})
	if g := loadCached(ctx, opts, key); g != nil {
		return extract(g, opts.IRI, opts.Reasoning, opts.Logger), nil
	}

	parser, err := Detect(source, head(data), Parsers()...)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("parsing ontology", "source", source, "format", parser.Format(), "bytes", len(data))
	g, err := parser.Parse(bytes.NewReader(data), opts.SynonymIRI)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOntologyLoad, err, "parse %s", source)
	}

	if opts.Reasoning {
		if err := Reason(g, opts.Logger); err != nil {
			return nil, err
		}
	}
	storeCached(ctx, opts, key, g)
	return extract(g, opts.IRI, opts.Reasoning, opts.Logger), nil
}

func read(ctx context.Context, opts Options) ([]byte, error) {
	if opts.File != "" {
		opts.Logger.Info("mapping ontology IRI to local file", "iri", opts.IRI, "file", opts.File)
		data, err := os.ReadFile(opts.File)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "ontology file %s", opts.File)
			}
			return nil, errors.Wrap(errors.ErrCodeOntologyLoad, err, "read %s", opts.File)
		}
		return data, nil
	}
	if opts.Fetcher == nil {
		return nil, errors.New(errors.ErrCodeOntologyLoad, "no ontology file given and no fetcher configured for %s", opts.IRI)
	}
	data, err := opts.Fetcher.Fetch(ctx, opts.IRI)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOntologyLoad, err, "fetch %s", opts.IRI)
	}
	return data, nil
}

func head(data []byte) []byte {
	if len(data) > sniffSize {
		return data[:sniffSize]
	}
	return data
}

func loadCached(ctx context.Context, opts Options, key string) *dag.DAG {
	if opts.Cache == nil || opts.Refresh {
		return nil
	}
	data, ok, err := opts.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("ontology cache read failed", "err", err)
		return nil
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "ontology")
		return nil
	}
	g, err := graphio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		opts.Logger.Warn("discarding unreadable cached class graph", "err", err)
		return nil
	}
	observability.Cache().OnCacheHit(ctx, "ontology")
	opts.Logger.Debug("using cached class graph", "iri", opts.IRI, "classes", g.NodeCount())
	return g
}

func storeCached(ctx context.Context, opts Options, key string, g *dag.DAG) {
	if opts.Cache == nil {
		return
	}
	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, &buf); err != nil {
		opts.Logger.Warn("ontology cache encode failed", "err", err)
		return
	}
	if err := opts.Cache.Set(ctx, key, buf.Bytes(), opts.CacheTTL); err != nil {
		opts.Logger.Warn("ontology cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "ontology", buf.Len())
}
