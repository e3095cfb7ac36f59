package ops

import (
	"context"
	"fmt"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
	"github.com/atomgraph/webalgebra/pkg/shape"
)

// RegisterTable registers the graph and result table helpers.
func RegisterTable(reg *registry.Registry) {
	reg.MustRegister(mergeDesc, opMerge)
	reg.MustRegister(bindingsDesc, opBindings)
	reg.MustRegister(filterDesc, opFilter)
}

var mergeDesc = algebra.Descriptor{
	Name: "Merge",
	Doc:  "Merges graphs into one, deduplicating identical triples.",
	Params: []algebra.Param{
		{Name: "graphs", Doc: "The graphs to merge.", Shape: shape.Sequence(shape.Graph())},
	},
}

func opMerge(ctx context.Context, call *algebra.Call) (any, error) {
	items := call.Arg("graphs").([]any)
	graphs := make([]*rdfio.Graph, 0, len(items))
	for i, item := range items {
		g, err := rdfio.AsGraph(item)
		if err != nil {
			return nil, fmt.Errorf("graph %d: %w", i+1, err)
		}
		graphs = append(graphs, g)
	}
	return rdfio.Merge(graphs...), nil
}

var bindingsDesc = algebra.Descriptor{
	Name: "Bindings",
	Doc:  "Extracts the sequence of binding rows from a result table.",
	Params: []algebra.Param{
		{Name: "table", Doc: "The result to extract rows from.", Shape: shape.Result()},
	},
}

func opBindings(ctx context.Context, call *algebra.Call) (any, error) {
	table, err := rdfio.AsResult(call.Arg("table"))
	if err != nil {
		return nil, err
	}
	out := make([]any, len(table.Rows))
	for i, row := range table.Rows {
		out[i] = row
	}
	return out, nil
}

var filterDesc = algebra.Descriptor{
	Name: "Filter",
	Doc:  "Selects rows by position, 1-based like XSLT predicates.",
	Params: []algebra.Param{
		{Name: "input", Doc: "The result or sequence to filter.", Shape: shape.Any()},
		{Name: "expression", Doc: "The 1-based position to select.", Shape: shape.Int()},
	},
}

// opFilter selects a single element by 1-based position. A single match
// is returned directly rather than wrapped in a sequence, following the
// XSLT predicate convention.
func opFilter(ctx context.Context, call *algebra.Call) (any, error) {
	var items []any
	switch in := call.Arg("input").(type) {
	case []any:
		items = in
	default:
		table, err := rdfio.AsResult(in)
		if err != nil {
			return nil, fmt.Errorf("input is neither a sequence nor a result: %w", err)
		}
		items = make([]any, len(table.Rows))
		for i, row := range table.Rows {
			items[i] = row
		}
	}
	pos := call.Int("expression", 0)
	if pos < 1 {
		return nil, fmt.Errorf("position must be >= 1, got %d", pos)
	}
	if pos > len(items) {
		return nil, fmt.Errorf("position %d exceeds number of rows (%d)", pos, len(items))
	}
	return items[pos-1], nil
}
