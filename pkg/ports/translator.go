package ports

import "context"

// Translator turns natural-language instructions into executable artifacts
// using a language model.
type Translator interface {
	// SPARQL translates an instruction into a SPARQL query string.
	SPARQL(ctx context.Context, instruction string) (string, error)
	// Workflow translates an instruction into a workflow document (a JSON
	// value in the operation wire format).
	Workflow(ctx context.Context, instruction string) (any, error)
}
