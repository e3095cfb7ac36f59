/*
Package webalgebra evaluates JSON workflow documents over the Web of Linked
Data: fetching RDF, querying SPARQL endpoints, transforming the results and
writing RDF back.

A workflow is a tree of operation invocations in the wire format
{"@op": name, "args": {...}}; a JSON array runs its elements in order, and
everything else is a literal value. Operations exchange RDF terms, graphs
and SPARQL result tables through their arguments, and the ForEach
combinator iterates an operation over result rows.

# Usage

Initialize an Engine and hand it a decoded workflow document:

	package main

	import (
		"context"
		"encoding/json"
		"fmt"
		"log"

		"github.com/atomgraph/webalgebra"
	)

	func main() {
		eng := webalgebra.New()

		doc := json.RawMessage(`{
			"@op": "ForEach",
			"args": {
				"result": {
					"@op": "SELECT",
					"args": {
						"endpoint": "https://dbpedia.org/sparql",
						"query": "SELECT ?city WHERE { ?city a dbo:City } LIMIT 5"
					}
				},
				"operation": {"@op": "Value", "args": {"name": "city"}}
			}
		}`)

		out, err := eng.EvaluateDocument(context.Background(), doc)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out)
	}

The same operations are exposed one-by-one as MCP tools and over the HTTP
API; see the cmd/webalgebra binary.
*/
package webalgebra
