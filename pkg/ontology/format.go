package ontology

import (
	"bytes"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/tburdett/owl2json/pkg/dag"
	"github.com/tburdett/owl2json/pkg/errors"
	graphio "github.com/tburdett/owl2json/pkg/io"
)

// Parser reads one ontology document format into a class graph.
type Parser interface {
	// Format returns the format identifier (e.g. "obo").
	Format() string
	// Supports reports whether the file name carries this format's extension.
	Supports(name string) bool
	// Sniff reports whether the document content looks like this format.
	Sniff(head []byte) bool
	// Parse reads the document. synonymIRI names the annotation property
	// whose literal values are synonyms.
	Parse(r io.Reader, synonymIRI string) (*dag.DAG, error)
}

// Parsers returns every supported document parser.
func Parsers() []Parser {
	return []Parser{OBOParser{}, GraphJSONParser{}}
}

// Detect picks the parser for a document, first by the extension of name
// (a file path or IRI), then by content. Documents no parser recognizes,
// such as RDF/XML, fail with ErrCodeUnsupported.
func Detect(name string, head []byte, parsers ...Parser) (Parser, error) {
	base := baseName(name)
	for _, p := range parsers {
		if p.Supports(base) {
			return p, nil
		}
	}
	for _, p := range parsers {
		if p.Sniff(head) {
			return p, nil
		}
	}
	kind := "unknown format"
	if trimmed := bytes.TrimSpace(head); bytes.HasPrefix(trimmed, []byte("<")) {
		kind = "XML (RDF/XML or OWL/XML)"
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "%s: %s documents are not supported; convert to OBO or graph JSON", base, kind)
}

func baseName(name string) string {
	if i := strings.Index(name, "://"); i >= 0 {
		rest := name[i+3:]
		rest, _, _ = strings.Cut(rest, "?")
		rest, _, _ = strings.Cut(rest, "#")
		return path.Base(rest)
	}
	return filepath.Base(name)
}

// GraphJSONParser reads the graph-JSON format of package io.
type GraphJSONParser struct{}

func (GraphJSONParser) Format() string { return "json" }

func (GraphJSONParser) Supports(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}

func (GraphJSONParser) Sniff(head []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(head), []byte("{"))
}

func (GraphJSONParser) Parse(r io.Reader, _ string) (*dag.DAG, error) {
	return graphio.ReadJSON(r)
}
