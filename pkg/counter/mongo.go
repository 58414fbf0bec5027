package counter

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tburdett/owl2json/pkg/integrations/zooma"
)

// MongoConfig locates an annotation collection. Each document in the
// collection is one data annotation with a "source" IRI and the
// "semanticTag" it was mapped to.
type MongoConfig struct {
	URI        string `toml:"uri" yaml:"uri" validate:"required,startswith=mongodb"`
	Database   string `toml:"database" yaml:"database" validate:"required"`
	Collection string `toml:"collection" yaml:"collection" validate:"required"`
	Source     string `toml:"source" yaml:"source"`
}

// Mongo reads counts of distinct annotations per semantic tag from MongoDB.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	source string
	logger *log.Logger
}

// NewMongo connects to MongoDB and verifies the connection.
// An empty cfg.Source selects the ZOOMA default datasource.
func NewMongo(ctx context.Context, cfg MongoConfig, logger *log.Logger) (*Mongo, error) {
	if logger == nil {
		logger = log.Default()
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	source := cfg.Source
	if source == "" {
		source = zooma.DefaultDatasource
	}
	return &Mongo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		source: source,
		logger: logger,
	}, nil
}

func (m *Mongo) Backing() string   { return "mongo" }
func (m *Mongo) Qualifier() string { return m.coll.Database().Name() + "." + m.coll.Name() + "#" + m.source }

// Close disconnects from MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// CountPipeline returns the aggregation counting distinct annotation ids per
// semantic tag for one source.
func CountPipeline(source string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "source", Value: source}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$semanticTag"},
			{Key: "datapoints", Value: bson.D{{Key: "$addToSet", Value: "$_id"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "count", Value: bson.D{{Key: "$size", Value: "$datapoints"}}},
		}}},
	}
}

// LookupCounts runs [CountPipeline] and collects the result rows.
func (m *Mongo) LookupCounts(ctx context.Context) (map[string]int, error) {
	cur, err := m.coll.Aggregate(ctx, CountPipeline(m.source))
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", m.coll.Name(), err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int)
	skipped := 0
	for cur.Next(ctx) {
		var row bson.M
		if err := cur.Decode(&row); err != nil {
			skipped++
			continue
		}
		tag, n, ok := countRow(row)
		if !ok {
			skipped++
			continue
		}
		counts[tag] = n
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read aggregation: %w", err)
	}
	if skipped > 0 {
		m.logger.Debug("skipped malformed aggregation rows", "rows", skipped)
	}
	return counts, nil
}

// countRow extracts a string _id and a non-negative integral count.
func countRow(row bson.M) (string, int, bool) {
	tag, ok := row["_id"].(string)
	if !ok || tag == "" {
		return "", 0, false
	}
	var n int
	switch v := row["count"].(type) {
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case int:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return "", 0, false
		}
		n = int(v)
	default:
		return "", 0, false
	}
	if n < 0 {
		return "", 0, false
	}
	return tag, n, true
}

var _ Source = (*Mongo)(nil)
