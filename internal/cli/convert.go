package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/tburdett/owl2json/pkg/counter"
	"github.com/tburdett/owl2json/pkg/errors"
	"github.com/tburdett/owl2json/pkg/integrations/zooma"
	"github.com/tburdett/owl2json/pkg/ontology"
	"github.com/tburdett/owl2json/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	file         string
	ontology     string
	ontologyFile string
	synonym      string
	depth        int
	size         int
	autoSize     bool
	noReasoning  bool

	zooma    string // datasource; NoOptDefVal makes a bare -z select the default
	zoomaURL string
	counts   string // local identity,count table

	mongoURI        string
	mongoDB         string
	mongoCollection string
	mongoSource     string

	formats    string
	detailed   bool
	horizontal bool
	refresh    bool
	noCache    bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	cmd, _ := c.newConvertCommand()
	return cmd
}

// newConvertCommand creates the convert command along with the options its
// flags are bound to.
func (c *CLI) newConvertCommand() (*cobra.Command, *convertOpts) {
	opts := &convertOpts{
		synonym: ontology.DefaultSynonymIRI,
		depth:   pipeline.Unset,
		size:    pipeline.Unset,
	}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an ontology class hierarchy into a JSON tree",
		Long: dedent.Dedent(`
			Convert loads an ontology, classifies it (unless --no-reasoning is
			given) and writes its class hierarchy as a JSON tree of
			{uri, name, size, children} nodes.

			Node sizes:
			  default          every leaf counts 1
			  -z[=datasource]  distinct ZOOMA annotations per class
			  --counts FILE    a local "identity,count" table
			  --mongo-uri URI  distinct annotations in a MongoDB collection

			A class's size includes its own count and everything beneath it.
			Children smaller than --size are folded into one "Other <parent>"
			node, and nothing below --depth is kept.`),
		Example: dedent.Dedent(`
			  owl2json convert -o http://www.ebi.ac.uk/efo --ontology-file efo.obo -f efo.json
			  owl2json convert -o http://www.ebi.ac.uk/efo -f efo.json -z -d 3 --auto-size
			  owl2json convert -o http://purl.obolibrary.org/obo/go.owl -f go.json --format tree,svg`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, opts)
			popts, err := opts.pipelineOptions()
			if err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), popts, opts.noCache)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "output JSON file (required)")
	f.StringVarP(&opts.ontology, "ontology", "o", "", "ontology IRI (required)")
	f.StringVar(&opts.ontologyFile, "ontology-file", "", "read the ontology from this file instead of its IRI")
	f.StringVarP(&opts.synonym, "synonym", "y", opts.synonym, "annotation property holding synonyms")
	f.IntVarP(&opts.depth, "depth", "d", opts.depth, "maximum tree depth (-1 for unlimited)")
	f.IntVarP(&opts.size, "size", "s", opts.size, "fold children smaller than this into \"Other ...\" (-1 to keep all)")
	f.BoolVar(&opts.autoSize, "auto-size", false, "fold children smaller than 1% of the labelled classes")
	f.BoolVar(&opts.noReasoning, "no-reasoning", false, "use asserted subclasses only")
	f.StringVarP(&opts.zooma, "zooma", "z", "", "size nodes by ZOOMA annotations, optionally from a datasource")
	f.Lookup("zooma").NoOptDefVal = zooma.DefaultDatasource
	f.StringVar(&opts.zoomaURL, "zooma-url", "", "ZOOMA API base URL")
	f.StringVar(&opts.counts, "counts", "", "size nodes from an identity,count CSV file")
	f.StringVar(&opts.mongoURI, "mongo-uri", "", "size nodes from a MongoDB annotation collection")
	f.StringVar(&opts.mongoDB, "mongo-db", "zooma", "MongoDB database")
	f.StringVar(&opts.mongoCollection, "mongo-collection", "annotations", "MongoDB collection")
	f.StringVar(&opts.mongoSource, "mongo-source", "", "annotation source to count (default ZOOMA datasource)")
	f.StringVar(&opts.formats, "format", "", "extra output formats: tree, dot, svg, pdf, png, graph (comma-separated)")
	f.BoolVar(&opts.detailed, "detailed", false, "show class URIs in tree and diagram output")
	f.BoolVar(&opts.horizontal, "horizontal", false, "lay diagrams out left to right")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached ontologies and counts")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	cmd.MarkFlagsMutuallyExclusive("zooma", "counts", "mongo-uri")
	_ = cmd.MarkFlagFilename("file", "json")
	_ = cmd.MarkFlagFilename("ontology-file", "obo", "json")
	_ = cmd.MarkFlagFilename("counts", "csv")

	return cmd, opts
}

// applyConfig copies config values into flags the user did not set.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *convertOpts) {
	cfg := c.cfg()
	set := func(name string) bool { return !cmd.Flags().Changed(name) }

	if cfg.Ontology != "" && set("ontology") {
		opts.ontology = cfg.Ontology
	}
	if cfg.OntologyFile != "" && set("ontology-file") {
		opts.ontologyFile = cfg.OntologyFile
	}
	if cfg.Synonym != "" && set("synonym") {
		opts.synonym = cfg.Synonym
	}
	if cfg.Reasoning != nil && set("no-reasoning") {
		opts.noReasoning = !*cfg.Reasoning
	}
	if cfg.Depth != nil && set("depth") {
		opts.depth = *cfg.Depth
	}
	if cfg.Size != nil && set("size") {
		opts.size = *cfg.Size
	}
	if cfg.AutoSize && set("auto-size") {
		opts.autoSize = true
	}
	if len(cfg.Formats) > 0 && set("format") {
		opts.formats = strings.Join(cfg.Formats, ",")
	}
	if cfg.Detailed && set("detailed") {
		opts.detailed = true
	}

	// A count source on the command line replaces the configured one.
	if cmd.Flags().Changed("zooma") || cmd.Flags().Changed("counts") || cmd.Flags().Changed("mongo-uri") {
		return
	}
	switch {
	case cfg.Counts != "":
		opts.counts = cfg.Counts
	case cfg.Zooma != nil:
		opts.zooma = cfg.Zooma.Datasource
		if opts.zooma == "" {
			opts.zooma = zooma.DefaultDatasource
		}
		if set("zooma-url") {
			opts.zoomaURL = cfg.Zooma.URL
		}
	case cfg.Mongo != nil:
		opts.mongoURI = cfg.Mongo.URI
		opts.mongoDB = cfg.Mongo.Database
		opts.mongoCollection = cfg.Mongo.Collection
		opts.mongoSource = cfg.Mongo.Source
	}
}

// pipelineOptions turns flags into pipeline options.
func (o *convertOpts) pipelineOptions() (pipeline.Options, error) {
	if o.file == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "an output file is required (-f/--file)")
	}
	if o.ontology == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "an ontology IRI is required (-o/--ontology)")
	}
	formats, err := pipeline.ParseFormats(o.formats)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		OntologyIRI:  o.ontology,
		OntologyFile: o.ontologyFile,
		SynonymIRI:   o.synonym,
		Reasoning:    !o.noReasoning,
		Counts:       pipeline.CountTree,
		MaxDepth:     o.depth,
		MinSize:      o.size,
		AutoSize:     o.autoSize,
		Output:       o.file,
		Formats:      formats,
		Detailed:     o.detailed,
		LeftToRight:  o.horizontal,
		Refresh:      o.refresh,
	}
	switch {
	case o.zooma != "":
		opts.Counts = pipeline.CountZooma
		opts.ZoomaDatasource = o.zooma
		opts.ZoomaURL = o.zoomaURL
	case o.counts != "":
		opts.Counts = pipeline.CountTable
		opts.CountsFile = o.counts
	case o.mongoURI != "":
		opts.Counts = pipeline.CountMongo
		opts.Mongo = &counter.MongoConfig{
			URI:        o.mongoURI,
			Database:   o.mongoDB,
			Collection: o.mongoCollection,
			Source:     o.mongoSource,
		}
	}
	return opts, nil
}

func (c *CLI) runConvert(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %s", result.Ontology.OntologyIRI()))

	printResult(result, opts)
	return nil
}
