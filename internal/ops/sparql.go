package ops

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/knakk/rdf"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
	"github.com/atomgraph/webalgebra/pkg/shape"
)

// RegisterSPARQL registers the SPARQL Protocol verbs and the query string
// utilities.
func RegisterSPARQL(reg *registry.Registry, deps Deps) {
	reg.MustRegister(selectDesc, opSelect(deps))
	reg.MustRegister(constructDesc, opConstruct(deps))
	reg.MustRegister(describeDesc, opDescribe(deps))
	reg.MustRegister(updateDesc, opUpdate(deps))
	reg.MustRegister(substituteDesc, opSubstitute)
	reg.MustRegister(sparqlStringDesc, opSPARQLString(deps))
}

var selectDesc = algebra.Descriptor{
	Name: "SELECT",
	Doc:  "Runs a SELECT query against a SPARQL endpoint and returns the solution table.",
	Params: []algebra.Param{
		{Name: "endpoint", Doc: "The SPARQL endpoint URI.", Shape: shape.URI()},
		{Name: "query", Doc: "The SELECT query string.", Shape: shape.Text()},
	},
}

func opSelect(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		endpoint, query, err := endpointAndQuery(call, "query")
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("running SELECT", "endpoint", endpoint)
		return deps.SPARQL.Select(ctx, endpoint, query)
	}
}

var constructDesc = algebra.Descriptor{
	Name: "CONSTRUCT",
	Doc:  "Runs a CONSTRUCT query against a SPARQL endpoint and returns the produced graph.",
	Params: []algebra.Param{
		{Name: "endpoint", Doc: "The SPARQL endpoint URI.", Shape: shape.URI()},
		{Name: "query", Doc: "The CONSTRUCT query string.", Shape: shape.Text()},
	},
}

func opConstruct(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		endpoint, query, err := endpointAndQuery(call, "query")
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("running CONSTRUCT", "endpoint", endpoint)
		return deps.SPARQL.Construct(ctx, endpoint, query)
	}
}

var describeDesc = algebra.Descriptor{
	Name: "DESCRIBE",
	Doc:  "Runs a DESCRIBE query against a SPARQL endpoint and returns the produced graph.",
	Params: []algebra.Param{
		{Name: "endpoint", Doc: "The SPARQL endpoint URI.", Shape: shape.URI()},
		{Name: "query", Doc: "The DESCRIBE query string.", Shape: shape.Text()},
	},
}

func opDescribe(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		endpoint, query, err := endpointAndQuery(call, "query")
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("running DESCRIBE", "endpoint", endpoint)
		return deps.SPARQL.Describe(ctx, endpoint, query)
	}
}

var updateDesc = algebra.Descriptor{
	Name: "Update",
	Doc:  "Posts a SPARQL update to an endpoint. Returns a status table.",
	Params: []algebra.Param{
		{Name: "endpoint", Doc: "The SPARQL update endpoint URI.", Shape: shape.URI()},
		{Name: "update", Doc: "The update string.", Shape: shape.Text()},
	},
}

func opUpdate(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		endpoint, update, err := endpointAndQuery(call, "update")
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("running update", "endpoint", endpoint)
		if err := deps.SPARQL.Update(ctx, endpoint, update); err != nil {
			return nil, err
		}
		return rdfio.StatusResult(204, endpoint), nil
	}
}

func endpointAndQuery(call *algebra.Call, queryParam string) (string, string, error) {
	endpoint, err := rdfio.Lexical(call.Arg("endpoint"))
	if err != nil {
		return "", "", err
	}
	query, err := rdfio.Lexical(call.Arg(queryParam))
	if err != nil {
		return "", "", err
	}
	return endpoint, query, nil
}

var substituteDesc = algebra.Descriptor{
	Name: "Substitute",
	Doc:  "Substitutes a variable placeholder in a query string with a term.",
	Params: []algebra.Param{
		{Name: "query", Doc: "The query string with ?var placeholders.", Shape: shape.Text()},
		{Name: "var", Doc: "The variable name to substitute, with or without the ? prefix.", Shape: shape.Text()},
		{Name: "binding", Doc: "The term to substitute in.", Shape: shape.Term()},
	},
}

// opSubstitute is textual substitution, not query rewriting: the term is
// serialized in N-Triples form and spliced in place of every ?var token.
func opSubstitute(ctx context.Context, call *algebra.Call) (any, error) {
	query, err := rdfio.Lexical(call.Arg("query"))
	if err != nil {
		return nil, err
	}
	name, err := rdfio.Lexical(call.Arg("var"))
	if err != nil {
		return nil, err
	}
	name = strings.TrimPrefix(name, "?")
	term, err := rdfio.TermFromAny(call.Arg("binding"))
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(`\?` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("variable name %q: %w", name, err)
	}
	return re.ReplaceAllString(query, term.Serialize(rdf.NTriples)), nil
}

var sparqlStringDesc = algebra.Descriptor{
	Name: "SPARQLString",
	Doc:  "Translates a natural-language instruction into a SPARQL query string.",
	Params: []algebra.Param{
		{Name: "instruction", Doc: "What the query should do, in natural language.", Shape: shape.Text()},
	},
}

func opSPARQLString(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		instruction, err := rdfio.Lexical(call.Arg("instruction"))
		if err != nil {
			return nil, err
		}
		if deps.Translator == nil {
			return nil, fmt.Errorf("no language model configured")
		}
		return deps.Translator.SPARQL(ctx, instruction)
	}
}
