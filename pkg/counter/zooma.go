package counter

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/tburdett/owl2json/pkg/integrations/zooma"
)

// Zooma reads counts of distinct data annotations per ontology term from
// one ZOOMA datasource.
type Zooma struct {
	client     *zooma.Client
	datasource string
	refresh    bool
	logger     *log.Logger
}

// NewZooma returns a Zooma source. An empty datasource selects
// [zooma.DefaultDatasource]; refresh bypasses the HTTP response cache.
func NewZooma(client *zooma.Client, datasource string, refresh bool, logger *log.Logger) *Zooma {
	if datasource == "" {
		datasource = zooma.DefaultDatasource
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Zooma{client: client, datasource: datasource, refresh: refresh, logger: logger}
}

func (z *Zooma) Backing() string   { return "zooma" }
func (z *Zooma) Qualifier() string { return z.datasource }

// LookupCounts runs the ZOOMA aggregation query.
func (z *Zooma) LookupCounts(ctx context.Context) (map[string]int, error) {
	z.logger.Debug("querying ZOOMA", "datasource", z.datasource)
	counts, err := z.client.FetchCounts(ctx, z.datasource, z.refresh)
	if err != nil {
		return nil, err
	}
	if counts.Skipped > 0 {
		z.logger.Debug("skipped malformed ZOOMA rows", "rows", counts.Skipped)
	}
	z.logger.Debug("fetched ZOOMA counts", "datapoints", counts.Datapoints, "terms", counts.Annotated())
	return counts.Terms, nil
}

var _ Source = (*Zooma)(nil)
