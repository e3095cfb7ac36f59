package ports

import (
	"context"

	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

// SPARQLClient runs queries and updates against SPARQL Protocol endpoints.
type SPARQLClient interface {
	// Select runs a SELECT query and returns the solution table.
	Select(ctx context.Context, endpoint, query string) (*rdfio.Result, error)
	// Construct runs a CONSTRUCT query and returns the produced graph.
	Construct(ctx context.Context, endpoint, query string) (*rdfio.Graph, error)
	// Describe runs a DESCRIBE query and returns the produced graph.
	Describe(ctx context.Context, endpoint, query string) (*rdfio.Graph, error)
	// Update posts a SPARQL update to the endpoint's update service.
	Update(ctx context.Context, endpoint, update string) error
}
