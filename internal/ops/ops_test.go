package ops

import (
	"context"
	"fmt"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/ports"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

// callWith builds a resolved call the way the evaluator would, with the
// eager argument values already in place.
func callWith(args map[string]any) *algebra.Call {
	return &algebra.Call{Args: args, Env: algebra.NewEnv()}
}

type fakeLinkedData struct {
	byURI map[string]*rdfio.Graph

	putURI    string
	putGraph  *rdfio.Graph
	postURI   string
	postGraph *rdfio.Graph
	patched   string
	deleted   string
}

func (f *fakeLinkedData) Get(ctx context.Context, uri string) (*rdfio.Graph, error) {
	g, ok := f.byURI[uri]
	if !ok {
		return nil, fmt.Errorf("not found: %s", uri)
	}
	return g, nil
}

func (f *fakeLinkedData) Post(ctx context.Context, uri string, g *rdfio.Graph) (ports.Status, error) {
	f.postURI, f.postGraph = uri, g
	return ports.Status{Code: 201, URL: uri}, nil
}

func (f *fakeLinkedData) Put(ctx context.Context, uri string, g *rdfio.Graph) (ports.Status, error) {
	f.putURI, f.putGraph = uri, g
	return ports.Status{Code: 201, URL: uri}, nil
}

func (f *fakeLinkedData) Patch(ctx context.Context, uri, update string) (ports.Status, error) {
	f.patched = update
	return ports.Status{Code: 204, URL: uri}, nil
}

func (f *fakeLinkedData) Delete(ctx context.Context, uri string) (ports.Status, error) {
	f.deleted = uri
	return ports.Status{Code: 204, URL: uri}, nil
}

type fakeSPARQL struct {
	result *rdfio.Result
	graph  *rdfio.Graph

	lastEndpoint string
	lastQuery    string
	lastUpdate   string
}

func (f *fakeSPARQL) Select(ctx context.Context, endpoint, query string) (*rdfio.Result, error) {
	f.lastEndpoint, f.lastQuery = endpoint, query
	return f.result, nil
}

func (f *fakeSPARQL) Construct(ctx context.Context, endpoint, query string) (*rdfio.Graph, error) {
	f.lastEndpoint, f.lastQuery = endpoint, query
	return f.graph, nil
}

func (f *fakeSPARQL) Describe(ctx context.Context, endpoint, query string) (*rdfio.Graph, error) {
	f.lastEndpoint, f.lastQuery = endpoint, query
	return f.graph, nil
}

func (f *fakeSPARQL) Update(ctx context.Context, endpoint, update string) error {
	f.lastEndpoint, f.lastUpdate = endpoint, update
	return nil
}

type fakeTranslator struct {
	query    string
	workflow any
}

func (f *fakeTranslator) SPARQL(ctx context.Context, instruction string) (string, error) {
	return f.query, nil
}

func (f *fakeTranslator) Workflow(ctx context.Context, instruction string) (any, error) {
	return f.workflow, nil
}
