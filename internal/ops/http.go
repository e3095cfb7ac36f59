package ops

import (
	"context"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/ports"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
	"github.com/atomgraph/webalgebra/pkg/shape"
)

// RegisterHTTP registers the Linked Data HTTP verbs.
func RegisterHTTP(reg *registry.Registry, deps Deps) {
	reg.MustRegister(getDesc, opGet(deps))
	reg.MustRegister(postDesc, opPost(deps))
	reg.MustRegister(putDesc, opPut(deps))
	reg.MustRegister(patchDesc, opPatch(deps))
	reg.MustRegister(deleteDesc, opDelete(deps))
}

var getDesc = algebra.Descriptor{
	Name: "GET",
	Doc:  "Dereferences a resource URI and returns its graph.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The resource URI.", Shape: shape.URI()},
	},
}

func opGet(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		uri, err := rdfio.Lexical(call.Arg("url"))
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("dereferencing", "url", uri)
		return deps.LinkedData.Get(ctx, uri)
	}
}

var postDesc = algebra.Descriptor{
	Name: "POST",
	Doc:  "Appends a graph to a container resource. Returns a status table.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The container URI.", Shape: shape.URI()},
		{Name: "data", Doc: "The graph to append, as JSON-LD or a graph value.", Shape: shape.Graph()},
	},
}

func opPost(deps Deps) algebra.OperationFunc {
	return writeOp(deps, "POST", func(ctx context.Context, uri string, g *rdfio.Graph) (ports.Status, error) {
		return deps.LinkedData.Post(ctx, uri, g)
	})
}

var putDesc = algebra.Descriptor{
	Name: "PUT",
	Doc:  "Replaces the resource state with a graph. Returns a status table.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The resource URI.", Shape: shape.URI()},
		{Name: "data", Doc: "The replacement graph, as JSON-LD or a graph value.", Shape: shape.Graph()},
	},
}

func opPut(deps Deps) algebra.OperationFunc {
	return writeOp(deps, "PUT", func(ctx context.Context, uri string, g *rdfio.Graph) (ports.Status, error) {
		return deps.LinkedData.Put(ctx, uri, g)
	})
}

func writeOp(deps Deps, verb string, do func(context.Context, string, *rdfio.Graph) (ports.Status, error)) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		uri, err := rdfio.Lexical(call.Arg("url"))
		if err != nil {
			return nil, err
		}
		g, err := rdfio.AsGraph(call.Arg("data"))
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("writing graph", "verb", verb, "url", uri, "triples", g.Len())
		st, err := do(ctx, uri, g)
		if err != nil {
			return nil, err
		}
		return rdfio.StatusResult(st.Code, st.URL), nil
	}
}

var patchDesc = algebra.Descriptor{
	Name: "PATCH",
	Doc:  "Applies a SPARQL update to the resource state. Returns a status table.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The resource URI.", Shape: shape.URI()},
		{Name: "update", Doc: "The SPARQL update to apply.", Shape: shape.Text()},
	},
}

func opPatch(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		uri, err := rdfio.Lexical(call.Arg("url"))
		if err != nil {
			return nil, err
		}
		update, err := rdfio.Lexical(call.Arg("update"))
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("patching", "url", uri)
		st, err := deps.LinkedData.Patch(ctx, uri, update)
		if err != nil {
			return nil, err
		}
		return rdfio.StatusResult(st.Code, st.URL), nil
	}
}

var deleteDesc = algebra.Descriptor{
	Name: "DELETE",
	Doc:  "Removes a resource. Returns a status table.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The resource URI.", Shape: shape.URI()},
	},
}

func opDelete(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		uri, err := rdfio.Lexical(call.Arg("url"))
		if err != nil {
			return nil, err
		}
		deps.logger().Debug("deleting", "url", uri)
		st, err := deps.LinkedData.Delete(ctx, uri)
		if err != nil {
			return nil, err
		}
		return rdfio.StatusResult(st.Code, st.URL), nil
	}
}
