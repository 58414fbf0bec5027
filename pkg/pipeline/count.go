package pipeline

import (
	"context"
	"fmt"

	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/counter"
	"github.com/tburdett/owl2json/pkg/hierarchy"
	"github.com/tburdett/owl2json/pkg/integrations/zooma"
)

// Counter returns the counter selected by opts.Counts together with a
// function releasing any connection it holds. The release function is never
// nil.
//
// Remote counts (ZOOMA, MongoDB) go through the runner's cache; a local
// table is always read fresh.
func (r *Runner) Counter(ctx context.Context, opts Options) (hierarchy.Counter, func(), error) {
	noop := func() {}
	logger := opts.Logger

	switch opts.Counts {
	case CountTree, "":
		return counter.TreeSize{}, noop, nil

	case CountTable:
		l, err := counter.NewLookup(ctx, counter.NewTable(opts.CountsFile, logger), logger)
		if err != nil {
			return nil, noop, err
		}
		return l, noop, nil

	case CountZooma:
		baseURL := opts.ZoomaURL
		if baseURL == "" {
			baseURL = zooma.DefaultBaseURL
		}
		client := zooma.NewClientWithBaseURL(r.Cache, cache.TTLHTTP, baseURL)
		l, err := counter.NewLookup(ctx, counter.NewZooma(client, opts.ZoomaDatasource, opts.Refresh, logger), logger)
		if err != nil {
			return nil, noop, err
		}
		return l, noop, nil

	case CountMongo:
		m, err := counter.NewMongo(ctx, *opts.Mongo, logger)
		if err != nil {
			return nil, noop, err
		}
		release := func() {
			if err := m.Close(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("mongodb disconnect failed", "err", err)
			}
		}
		src := counter.NewCached(m, r.Cache, r.Keyer, cache.TTLCounts, opts.Refresh, logger)
		l, err := counter.NewLookup(ctx, src, logger)
		if err != nil {
			release()
			return nil, noop, err
		}
		return l, release, nil
	}
	return nil, noop, fmt.Errorf("unknown count source %q", opts.Counts)
}
