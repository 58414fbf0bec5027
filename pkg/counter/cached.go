package counter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/observability"
)

// Cached memoizes another Source's count map in a [cache.Cache].
type Cached struct {
	src     Source
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	refresh bool
	logger  *log.Logger
}

// NewCached wraps src. A nil keyer uses [cache.NewDefaultKeyer]; refresh
// skips the read but still stores the fresh result.
func NewCached(src Source, c cache.Cache, keyer cache.Keyer, ttl time.Duration, refresh bool, logger *log.Logger) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{src: src, cache: c, keyer: keyer, ttl: ttl, refresh: refresh, logger: logger}
}

func (c *Cached) Backing() string   { return c.src.Backing() }
func (c *Cached) Qualifier() string { return c.src.Qualifier() }

// LookupCounts returns the cached map when present, otherwise asks the
// wrapped source and stores its answer. Cache failures only cost a refetch.
func (c *Cached) LookupCounts(ctx context.Context) (map[string]int, error) {
	key := c.keyer.CountsKey(c.src.Backing(), c.src.Qualifier())
	hooks := observability.Cache()

	if !c.refresh {
		data, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("counts cache read failed", "err", err)
		}
		if ok {
			var counts map[string]int
			if err := json.Unmarshal(data, &counts); err == nil {
				hooks.OnCacheHit(ctx, "counts")
				c.logger.Debug("using cached counts", "backing", c.src.Backing(), "uris", len(counts))
				return counts, nil
			}
		}
		hooks.OnCacheMiss(ctx, "counts")
	}

	counts, err := c.src.LookupCounts(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return counts, nil
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("counts cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "counts", len(data))
	}
	return counts, nil
}

var _ Source = (*Cached)(nil)
