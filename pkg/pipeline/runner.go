package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/hierarchy"
	"github.com/tburdett/owl2json/pkg/observability"
	"github.com/tburdett/owl2json/pkg/ontology"
)

// Runner executes conversions against a shared cache.
//
// The Runner holds no per-run state, so one Runner can serve several
// conversions in sequence.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Fetcher downloads ontologies that have no local file. Nil uses
	// [ontology.NewHTTPFetcher].
	Fetcher ontology.Fetcher
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default key scheme and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load → count → build → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{Files: make(map[string]string)}

	// Stage 1: Load
	loadStart := time.Now()
	o, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Ontology = o
	result.Stats.LoadTime = time.Since(loadStart)
	r.Logger.Info("loaded ontology",
		"iri", o.OntologyIRI(),
		"classes", o.ClassCount(),
		"labelled", len(o.ClassLabels()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Count
	countStart := time.Now()
	c, closeCounter, err := r.Counter(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer closeCounter()
	result.Stats.CountTime = time.Since(countStart)

	// Stage 3: Build
	minSize := opts.MinSize
	if opts.AutoSize {
		minSize = hierarchy.AutoMinSize(len(o.ClassLabels()))
		r.Logger.Info("using one percent grouping threshold", "min_size", minSize)
	}
	result.MinSize = minSize

	buildStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.MaxDepth, minSize)
	root, stats, err := hierarchy.BuildWithStats(o, c, hierarchy.Options{
		MaxDepth: opts.MaxDepth,
		MinSize:  minSize,
		Logger:   opts.Logger,
	})
	nodes := 0
	if root != nil {
		nodes = root.Len()
	}
	hooks.OnBuildComplete(ctx, nodes, time.Since(buildStart), err)
	if err != nil {
		return nil, fmt.Errorf("build hierarchy: %w", err)
	}
	hierarchy.SortChildren(root)
	result.Root = root
	result.BuildStats = stats
	result.Stats.BuildTime = time.Since(buildStart)
	r.Logger.Info("built hierarchy",
		"nodes", stats.Nodes,
		"size", root.Size,
		"depth", root.Depth(),
		"duration", result.Stats.BuildTime)

	// Stage 4: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	err = r.Render(ctx, result, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the ontology described by opts.
func (r *Runner) Load(ctx context.Context, opts Options) (*ontology.Ontology, error) {
	fetcher := r.Fetcher
	if fetcher == nil {
		fetcher = ontology.NewHTTPFetcher()
	}
	return ontology.Load(ctx, ontology.Options{
		IRI:        opts.OntologyIRI,
		File:       opts.OntologyFile,
		SynonymIRI: opts.SynonymIRI,
		Reasoning:  opts.Reasoning,
		Fetcher:    fetcher,
		Cache:      r.Cache,
		Keyer:      r.Keyer,
		CacheTTL:   cache.TTLOntology,
		Refresh:    opts.Refresh,
		Logger:     opts.Logger,
	})
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
