// Package pipeline runs a complete owl2json conversion.
//
// # Architecture
//
// A conversion has four stages, each logged with its duration:
//
//  1. Load: read and optionally classify the ontology (package ontology)
//  2. Count: initialize the count source (package counter)
//  3. Build: construct, count, prune and group the tree (package hierarchy)
//  4. Render: write the JSON document and any extra formats
//
// The CLI builds an [Options] value from flags and config, and hands it to
// a [Runner] that owns the cache and logger.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    OntologyIRI: "http://www.ebi.ac.uk/efo",
//	    OntologyFile: "efo.obo",
//	    Counts:      pipeline.CountZooma,
//	    MaxDepth:    3, // 0 keeps the root only, pipeline.Unset the whole tree
//	    MinSize:     pipeline.Unset,
//	    Output:      "efo.json",
//	    Formats:     []string{"json", "svg"},
//	})
//	fmt.Println(result.Files["svg"]) // efo.svg
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/tburdett/owl2json/pkg/counter"
	"github.com/tburdett/owl2json/pkg/errors"
	"github.com/tburdett/owl2json/pkg/hierarchy"
	"github.com/tburdett/owl2json/pkg/ontology"
)

// Unset disables depth pruning (MaxDepth) or grouping (MinSize).
const Unset = -1

// Output formats.
const (
	FormatJSON  = "json"  // size-annotated tree, the primary output
	FormatTree  = "tree"  // indented text tree
	FormatDOT   = "dot"   // Graphviz source
	FormatSVG   = "svg"   // node-link diagram
	FormatPDF   = "pdf"   // node-link diagram, needs rsvg-convert
	FormatPNG   = "png"   // node-link diagram, needs rsvg-convert
	FormatGraph = "graph" // the loaded class graph in graph-JSON form
)

// Count sources.
const (
	CountTree  = "tree"  // leaves count 1
	CountZooma = "zooma" // ZOOMA datapoints per term
	CountTable = "csv"   // local identity,count table
	CountMongo = "mongo" // MongoDB annotation collection
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:  true,
	FormatTree:  true,
	FormatDOT:   true,
	FormatSVG:   true,
	FormatPDF:   true,
	FormatPNG:   true,
	FormatGraph: true,
}

// formatExt maps formats to the extension of their output file.
var formatExt = map[string]string{
	FormatJSON:  ".json",
	FormatTree:  ".txt",
	FormatDOT:   ".dot",
	FormatSVG:   ".svg",
	FormatPDF:   ".pdf",
	FormatPNG:   ".png",
	FormatGraph: ".graph.json",
}

// Options contains the configuration of one conversion run.
type Options struct {
	// Ontology
	OntologyIRI  string `validate:"required"`
	OntologyFile string
	SynonymIRI   string
	Reasoning    bool

	// Counting
	Counts          string `validate:"omitempty,oneof=tree zooma csv mongo"`
	ZoomaDatasource string
	ZoomaURL        string               `validate:"omitempty,url"`
	CountsFile      string               `validate:"required_if=Counts csv"`
	Mongo           *counter.MongoConfig `validate:"omitempty"`

	// Tree shape. MaxDepth counts levels below the root: 0 keeps the root
	// alone and Unset keeps every level, so callers building Options by hand
	// must set it explicitly. MinSize Unset disables grouping.
	MaxDepth int  `validate:"gte=-1"`
	MinSize  int  `validate:"gte=-1"`
	AutoSize bool // one-percent threshold; overrides MinSize

	// Output
	Output      string   `validate:"required"`
	Formats     []string `validate:"dive,oneof=json tree dot svg pdf png graph"`
	Detailed    bool     // class URIs in tree and diagram labels
	LeftToRight bool     // horizontal diagrams

	// Refresh skips cache reads for ontologies and counts.
	Refresh bool

	Logger *log.Logger `validate:"-"`

	validated bool
}

// Result contains the outputs of a conversion.
type Result struct {
	Ontology   *ontology.Ontology
	Root       *hierarchy.Node
	BuildStats hierarchy.Stats
	// MinSize is the grouping threshold actually applied.
	MinSize int
	// Files maps each rendered format to the path it was written to.
	Files map[string]string
	Stats Stats
}

// Stats contains timing information.
type Stats struct {
	LoadTime   time.Duration
	CountTime  time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: json, tree, dot, svg, pdf, png, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming and
// de-duplicating entries. The JSON format is always included.
func ParseFormats(s string) ([]string, error) {
	formats := []string{FormatJSON}
	seen := map[string]bool{FormatJSON: true}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Counts == "" {
		o.Counts = CountTree
	}
	if o.SynonymIRI == "" {
		o.SynonymIRI = ontology.DefaultSynonymIRI
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := structValidator().Struct(o); err != nil {
		return validationError(err)
	}
	if o.Counts == CountMongo && o.Mongo == nil {
		return errors.New(errors.ErrCodeInvalidInput, "mongo counting needs a MongoDB connection (--mongo-uri)")
	}
	if err := errors.ValidateIRI(o.OntologyIRI); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if o.ZoomaURL != "" {
		if err := errors.ValidateURL(o.ZoomaURL); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "validation failed on %s", strings.Join(fields, ", "))
}

// OutputPath returns where a format is written: the JSON document goes to
// Output, every other format goes next to it with its own extension.
func (o *Options) OutputPath(format string) string {
	if format == FormatJSON {
		return o.Output
	}
	base := strings.TrimSuffix(o.Output, filepath.Ext(o.Output))
	if ext, ok := formatExt[format]; ok {
		return base + ext
	}
	return fmt.Sprintf("%s.%s", base, format)
}
