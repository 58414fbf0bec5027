// Package zooma provides an HTTP client for the ZOOMA annotation store.
//
// # Overview
//
// ZOOMA (https://www.ebi.ac.uk/spot/zooma) holds curated mappings from
// free-text annotations to ontology terms, grouped by the datasource that
// supplied them. Its SPARQL endpoint can report how many distinct data
// annotations each ontology term received from one datasource; owl2json
// uses those numbers as per-class counts.
//
// # Usage
//
//	client := zooma.NewClient(c, 24*time.Hour)
//	counts, err := client.FetchCounts(ctx, zooma.DefaultDatasource, false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(counts.Terms["http://www.ebi.ac.uk/efo/EFO_0000311"])
//
// # Query
//
// The query is a fixed SPARQL SELECT grouping DataAnnotations by semantic
// tag and filtering on dc:source. Only the datasource IRI varies; it must be
// an absolute IRI without characters that could escape the <...> term.
package zooma
