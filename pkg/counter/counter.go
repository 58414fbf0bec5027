package counter

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tburdett/owl2json/pkg/errors"
	"github.com/tburdett/owl2json/pkg/hierarchy"
	"github.com/tburdett/owl2json/pkg/observability"
)

// Source supplies per-class counts keyed by class identity.
type Source interface {
	// Backing names the kind of source: "csv", "zooma" or "mongo".
	Backing() string
	// Qualifier distinguishes sources of the same backing, such as a file
	// path or a datasource IRI.
	Qualifier() string
	// LookupCounts fetches every count the source knows about.
	LookupCounts(ctx context.Context) (map[string]int, error)
}

// TreeSize sizes a node by its number of leaves.
type TreeSize struct{}

// Count returns 1 for a leaf, otherwise the sum of the children's sizes.
func (TreeSize) Count(n *hierarchy.Node) int {
	if n.IsLeaf() {
		return 1
	}
	return sumChildren(n)
}

// Lookup sizes a node by its own looked-up count plus its children's sizes.
// Classes the source does not mention count as zero.
type Lookup struct {
	src    Source
	logger *log.Logger

	once   sync.Once
	counts map[string]int
	err    error
}

// NewLookup creates a Lookup and loads its counts immediately.
// A source failure is returned as a COUNTS_UNAVAILABLE error.
func NewLookup(ctx context.Context, src Source, logger *log.Logger) (*Lookup, error) {
	if logger == nil {
		logger = log.Default()
	}
	l := &Lookup{src: src, logger: logger}
	if err := l.Init(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Init loads the counts on its first call. Later calls return the first
// call's result without contacting the source again, warning if that result
// was a successful load.
func (l *Lookup) Init(ctx context.Context) error {
	first := false
	l.once.Do(func() {
		first = true
		l.err = l.load(ctx)
	})
	if !first && l.err == nil {
		l.logger.Warn("counts already loaded, not reloading", "backing", l.src.Backing(), "source", l.src.Qualifier())
	}
	return l.err
}

func (l *Lookup) load(ctx context.Context) error {
	backing := l.src.Backing()
	hooks := observability.Pipeline()
	hooks.OnCountStart(ctx, backing)
	start := time.Now()

	counts, err := l.src.LookupCounts(ctx)
	hooks.OnCountComplete(ctx, backing, len(counts), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCountsUnavailable, err, "load %s counts from %s", backing, l.src.Qualifier())
	}
	if counts == nil {
		counts = map[string]int{}
	}
	l.counts = counts
	l.logger.Info("acquired counts", "backing", backing, "uris", len(counts))
	return nil
}

// Count returns the node's looked-up count plus the sum of its children's sizes.
func (l *Lookup) Count(n *hierarchy.Node) int {
	return l.counts[n.URI] + sumChildren(n)
}

// Len returns how many identities have a count.
func (l *Lookup) Len() int { return len(l.counts) }

func sumChildren(n *hierarchy.Node) int {
	total := 0
	for _, c := range n.Children {
		total += c.Size
	}
	return total
}

var (
	_ hierarchy.Counter = TreeSize{}
	_ hierarchy.Counter = (*Lookup)(nil)
)
