package ops

import (
	"context"
	"fmt"
	"net/url"

	"github.com/knakk/rdf"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
	"github.com/atomgraph/webalgebra/pkg/shape"
)

// RegisterURIs registers the URI construction operations.
func RegisterURIs(reg *registry.Registry) {
	reg.MustRegister(uriDesc, opURI)
	reg.MustRegister(resolveURIDesc, opResolveURI)
}

var uriDesc = algebra.Descriptor{
	Name: "URI",
	Doc:  "Constructs a URI term from a string.",
	Params: []algebra.Param{
		{Name: "value", Doc: "The URI string.", Shape: shape.Text()},
	},
}

func opURI(ctx context.Context, call *algebra.Call) (any, error) {
	s, err := rdfio.Lexical(call.Arg("value"))
	if err != nil {
		return nil, err
	}
	iri, err := rdf.NewIRI(s)
	if err != nil {
		return nil, fmt.Errorf("invalid URI %q: %w", s, err)
	}
	return iri, nil
}

var resolveURIDesc = algebra.Descriptor{
	Name: "ResolveURI",
	Doc:  "Resolves a relative reference against a base URI.",
	Params: []algebra.Param{
		{Name: "base", Doc: "The absolute base URI.", Shape: shape.URI()},
		{Name: "relative", Doc: "The relative reference.", Shape: shape.Text()},
	},
}

func opResolveURI(ctx context.Context, call *algebra.Call) (any, error) {
	baseStr, err := rdfio.Lexical(call.Arg("base"))
	if err != nil {
		return nil, err
	}
	relStr, err := rdfio.Lexical(call.Arg("relative"))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(baseStr)
	if err != nil {
		return nil, fmt.Errorf("invalid base URI %q: %w", baseStr, err)
	}
	rel, err := url.Parse(relStr)
	if err != nil {
		return nil, fmt.Errorf("invalid reference %q: %w", relStr, err)
	}
	iri, err := rdf.NewIRI(base.ResolveReference(rel).String())
	if err != nil {
		return nil, err
	}
	return iri, nil
}
