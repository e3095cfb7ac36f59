// Package rdfio carries the RDF values that flow between operations: terms
// in the SPARQL JSON binding shape, deduplicated triple graphs, and ordered
// tabular query results.
//
// Terms are represented by github.com/knakk/rdf. Graph serialization uses
// N-Triples directly and JSON-LD via github.com/piprate/json-gold.
package rdfio
