package zooma

import (
	"net/url"
	"strings"

	"github.com/tburdett/owl2json/pkg/errors"
)

const (
	// DefaultBaseURL is the public ZOOMA v2 API.
	DefaultBaseURL = "http://www.ebi.ac.uk/fgpt/zooma/v2/api"

	// DefaultDatasource is the GWAS catalog, used when no datasource is named.
	DefaultDatasource = "http://www.genome.gov/gwastudies"
)

const queryTemplate = "PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>\r\n" +
	"PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>\r\n" +
	"PREFIX owl: <http://www.w3.org/2002/07/owl#>\r\n" +
	"PREFIX dc: <http://purl.org/dc/elements/1.1/>\r\n" +
	"PREFIX obo: <http://purl.obolibrary.org/obo/>\r\n" +
	"PREFIX efo: <http://www.ebi.ac.uk/efo/>\r\n" +
	"PREFIX zoomaresource: <http://rdf.ebi.ac.uk/resource/zooma/>\r\n" +
	"PREFIX zoomaterms: <http://rdf.ebi.ac.uk/terms/zooma/>\r\n" +
	"PREFIX oac: <http://www.openannotation.org/ns/>\r\n" +
	"\r\n" +
	"SELECT ?semantictag (count(DISTINCT ?annotationid) as ?datapoints) WHERE {\r\n" +
	"  ?annotationid rdf:type oac:DataAnnotation ;\r\n" +
	"                oac:hasBody ?semantictag . \r\n" +
	"  ?semantictag rdf:type oac:SemanticTag . \r\n" +
	"  ?annotationid dc:source ?source .\r\n" +
	"  FILTER (?source = <%DATASOURCE%>) .\r\n" +
	"}\r\n" +
	"GROUP BY ?semantictag\r\n" +
	"ORDER BY DESC(?datapoints)\r\n"

// Query returns the SPARQL text counting annotations per semantic tag for
// one datasource.
func Query(datasource string) (string, error) {
	if err := ValidateDatasource(datasource); err != nil {
		return "", err
	}
	return strings.Replace(queryTemplate, "%DATASOURCE%", datasource, 1), nil
}

// QueryURL builds the full GET URL for the counts query against baseURL.
func QueryURL(baseURL, datasource string) (string, error) {
	q, err := Query(datasource)
	if err != nil {
		return "", err
	}
	v := url.Values{}
	v.Set("query", q)
	v.Set("format", "JSON")
	v.Set("inference", "false")
	return strings.TrimSuffix(baseURL, "/") + "/query?" + v.Encode(), nil
}

// ValidateDatasource checks that datasource is an absolute IRI that can be
// written inside a SPARQL IRI reference.
func ValidateDatasource(datasource string) error {
	if err := errors.ValidateIRI(datasource); err != nil {
		return err
	}
	if strings.ContainsAny(datasource, "<>\"{}|^`\\") {
		return errors.New(errors.ErrCodeInvalidIRI, "datasource %q contains characters not allowed in a SPARQL IRI", datasource)
	}
	return nil
}
