package ontology

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tburdett/owl2json/pkg/dag"
)

const (
	oboBase = "http://purl.obolibrary.org/obo/"

	// ObsoleteClassIRI is the class that deprecated terms are filed under in
	// OWL translations of OBO ontologies.
	ObsoleteClassIRI = "http://www.geneontology.org/formats/oboInOwl#ObsoleteClass"

	// metaGenus holds the genus classes named by intersection_of tags.
	metaGenus = "genus"

	maxLineSize = 1 << 20
)

// propertyPrefixes expands the CURIEs commonly used for annotation
// properties in property_value tags.
var propertyPrefixes = map[string]string{
	"EFO":      "http://www.ebi.ac.uk/efo/",
	"oboInOwl": "http://www.geneontology.org/formats/oboInOwl#",
	"rdfs":     "http://www.w3.org/2000/01/rdf-schema#",
	"skos":     "http://www.w3.org/2004/02/skos/core#",
	"dc":       "http://purl.org/dc/elements/1.1/",
}

// OBOParser reads OBO 1.2 and 1.4 flat files.
//
// Only [Term] stanzas contribute classes. Recognized term tags are id, name,
// is_a, synonym, property_value, is_obsolete, intersection_of and
// disjoint_from; other tags and stanza types are ignored. Identifiers are
// expanded to IRIs using idspace header declarations, falling back to the
// OBO Foundry PURL scheme (GO:0008150 becomes
// http://purl.obolibrary.org/obo/GO_0008150).
type OBOParser struct{}

func (OBOParser) Format() string { return "obo" }

func (OBOParser) Supports(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".obo")
}

func (OBOParser) Sniff(head []byte) bool {
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("format-version:")) ||
		bytes.HasPrefix(head, []byte("[Term]")) ||
		bytes.Contains(head, []byte("\n[Term]"))
}

func (OBOParser) Parse(r io.Reader, synonymIRI string) (*dag.DAG, error) {
	p := &oboParser{
		synonymIRI: synonymIRI,
		idspaces:   map[string]string{},
		g:          dag.New(nil),
	}
	if err := p.run(r); err != nil {
		return nil, err
	}
	return p.g, nil
}

type term struct {
	line     int
	id       string
	names    []string
	parents  []string
	synonyms []string
	genus    []string
	disjoint []string
	obsolete bool
}

type oboParser struct {
	synonymIRI string
	idspaces   map[string]string
	ontology   string
	g          *dag.DAG
}

func (p *oboParser) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		cur      *term
		inHeader = true
		inTerm   bool
		lineNo   int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		t := cur
		cur = nil
		return p.commit(t)
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return fmt.Errorf("line %d: malformed stanza header %q", lineNo, line)
			}
			if err := flush(); err != nil {
				return err
			}
			if inHeader {
				inHeader = false
				p.finishHeader()
			}
			inTerm = line == "[Term]"
			if inTerm {
				cur = &term{line: lineNo}
			}
			continue
		}

		tag, value, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("line %d: expected \"tag: value\", got %q", lineNo, line)
		}
		tag = strings.TrimSpace(tag)
		value = strings.TrimSpace(value)

		switch {
		case inHeader:
			p.headerTag(tag, value)
		case inTerm:
			if err := p.termTag(cur, tag, value); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if inHeader {
		p.finishHeader()
	}
	return flush()
}

func (p *oboParser) headerTag(tag, value string) {
	value = stripComment(value)
	switch tag {
	case "ontology":
		p.ontology = value
	case "idspace":
		fields := strings.Fields(value)
		if len(fields) >= 2 {
			p.idspaces[fields[0]] = fields[1]
		}
	}
}

func (p *oboParser) finishHeader() {
	switch {
	case p.ontology == "":
	case strings.Contains(p.ontology, "://"):
		p.g.Meta()[dag.MetaIRI] = p.ontology
	default:
		p.g.Meta()[dag.MetaIRI] = oboBase + p.ontology + ".owl"
	}
}

func (p *oboParser) termTag(t *term, tag, value string) error {
	switch tag {
	case "id":
		t.id = unescape(stripComment(value))
	case "name":
		t.names = append(t.names, unescape(stripComment(value)))
	case "is_a":
		t.parents = append(t.parents, stripComment(value))
	case "synonym":
		s, _, err := quoted(value)
		if err != nil {
			return fmt.Errorf("synonym: %w", err)
		}
		t.synonyms = append(t.synonyms, s)
	case "property_value":
		prop, rest, _ := strings.Cut(value, " ")
		if p.resolveProperty(prop) != p.synonymIRI {
			return nil
		}
		rest = strings.TrimSpace(rest)
		if !strings.HasPrefix(rest, `"`) {
			return nil // IRI values are not literals
		}
		s, _, err := quoted(rest)
		if err != nil {
			return fmt.Errorf("property_value: %w", err)
		}
		t.synonyms = append(t.synonyms, s)
	case "is_obsolete":
		t.obsolete = stripComment(value) == "true"
	case "intersection_of":
		fields := strings.Fields(stripComment(value))
		if len(fields) == 1 {
			t.genus = append(t.genus, fields[0])
		}
	case "disjoint_from":
		t.disjoint = append(t.disjoint, stripComment(value))
	}
	return nil
}

func (p *oboParser) commit(t *term) error {
	if t.id == "" {
		return fmt.Errorf("line %d: [Term] stanza has no id", t.line)
	}
	id := p.resolve(t.id)
	n := p.g.EnsureNode(id)
	if t.obsolete {
		n.Kind = dag.NodeKindObsolete
	}

	if labels := append(stringsOf(n.Meta[dag.MetaLabel]), t.names...); len(labels) == 1 {
		n.Meta[dag.MetaLabel] = labels[0]
	} else if len(labels) > 1 {
		n.Meta[dag.MetaLabel] = labels
	}
	if len(t.synonyms) > 0 {
		n.Meta[dag.MetaSynonyms] = append(n.Synonyms(), t.synonyms...)
	}

	for _, parent := range t.parents {
		pid := p.resolve(parent)
		p.g.EnsureNode(pid)
		_ = p.g.AddEdge(dag.Edge{From: pid, To: id})
	}
	if len(t.genus) > 0 {
		genus := stringsOf(n.Meta[metaGenus])
		for _, gid := range t.genus {
			genus = append(genus, p.resolve(gid))
		}
		n.Meta[metaGenus] = genus
	}
	for _, other := range t.disjoint {
		oid := p.resolve(other)
		p.g.EnsureNode(oid)
		p.g.AddDisjoint(id, oid)
	}
	return nil
}

// resolve expands an OBO identifier to an IRI.
func (p *oboParser) resolve(id string) string {
	if strings.Contains(id, "://") {
		return id
	}
	prefix, local, ok := strings.Cut(id, ":")
	if !ok {
		name := p.ontology
		if name == "" {
			name = "local"
		}
		return oboBase + name + "#" + id
	}
	if base, ok := p.idspaces[prefix]; ok {
		return base + local
	}
	return oboBase + prefix + "_" + local
}

func (p *oboParser) resolveProperty(prop string) string {
	if strings.Contains(prop, "://") {
		return prop
	}
	prefix, local, ok := strings.Cut(prop, ":")
	if ok {
		if base, ok := p.idspaces[prefix]; ok {
			return base + local
		}
		if base, ok := propertyPrefixes[prefix]; ok {
			return base + local
		}
	}
	return p.resolve(prop)
}

// stripComment removes a trailing "! comment" and "{qualifier}" block from
// an unquoted tag value.
func stripComment(v string) string {
	inQuote, escaped := false, false
	for i, r := range v {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case r == '!' && !inQuote:
			v = v[:i]
			return stripQualifiers(strings.TrimSpace(v))
		}
	}
	return stripQualifiers(strings.TrimSpace(v))
}

func stripQualifiers(v string) string {
	if !strings.HasSuffix(v, "}") {
		return v
	}
	if i := strings.LastIndex(v, "{"); i > 0 && v[i-1] == ' ' {
		return strings.TrimSpace(v[:i])
	}
	return v
}

// quoted reads a double-quoted string from the start of v and returns it
// unescaped, along with the remainder of v.
func quoted(v string) (string, string, error) {
	if !strings.HasPrefix(v, `"`) {
		return "", v, fmt.Errorf("expected quoted string, got %q", v)
	}
	escaped := false
	for i := 1; i < len(v); i++ {
		switch {
		case escaped:
			escaped = false
		case v[i] == '\\':
			escaped = true
		case v[i] == '"':
			return unescape(v[1:i]), strings.TrimSpace(v[i+1:]), nil
		}
	}
	return "", v, fmt.Errorf("unterminated quoted string %q", v)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			switch r {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'W':
				b.WriteByte(' ')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stringsOf reads a metadata value that holds one string or a list of them.
func stringsOf(v any) []string {
	switch v := v.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
