/*
Package ports defines the driven ports (interfaces) for the Web Algebra engine.

These interfaces decouple the operations from external implementations,
allowing the engine to work with various Linked Data servers, SPARQL
endpoints and language model providers.

# Key Interfaces

  - LinkedDataClient: dereferences and writes RDF documents over HTTP.
  - SPARQLClient: runs queries and updates against SPARQL endpoints.
  - Translator: turns natural-language instructions into SPARQL or workflows.
*/
package ports
