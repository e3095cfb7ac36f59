package ports

import (
	"context"

	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

// Status is the outcome of a write request against a Linked Data server.
type Status struct {
	Code int
	// URL is the effective resource URL: the Location header for 201
	// responses, the request URL otherwise.
	URL string
}

// LinkedDataClient dereferences and writes RDF documents over HTTP.
type LinkedDataClient interface {
	// Get dereferences a resource URI and parses the response into a graph.
	Get(ctx context.Context, uri string) (*rdfio.Graph, error)
	// Post appends a graph to a container resource.
	Post(ctx context.Context, uri string, g *rdfio.Graph) (Status, error)
	// Put replaces the resource state with a graph.
	Put(ctx context.Context, uri string, g *rdfio.Graph) (Status, error)
	// Patch applies a SPARQL update to the resource state.
	Patch(ctx context.Context, uri string, update string) (Status, error)
	// Delete removes the resource.
	Delete(ctx context.Context, uri string) (Status, error)
}
