package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
	"github.com/atomgraph/webalgebra/pkg/shape"
)

// RegisterCore registers the value access and scoping combinators. These
// need no external collaborators.
func RegisterCore(reg *registry.Registry) {
	reg.MustRegister(valueDesc, opValue)
	reg.MustRegister(variableDesc, opVariable)
	reg.MustRegister(currentDesc, opCurrent)
	reg.MustRegister(forEachDesc, opForEach)
	reg.MustRegister(executeDesc, opExecute)
}

var valueDesc = algebra.Descriptor{
	Name: "Value",
	Doc:  "Retrieves a value from the variable stack ($ prefix) or the current row.",
	Params: []algebra.Param{
		{Name: "name", Doc: "The variable or column name to look up. Use $ prefix for variables.", Shape: shape.Text()},
	},
}

// opValue resolves a name against the variable stack when prefixed with
// the $ sigil, and against the current row otherwise. Both lookups fail
// hard when the name is absent; there is no fallback between the two.
func opValue(ctx context.Context, call *algebra.Call) (any, error) {
	name, err := rdfio.Lexical(call.Arg("name"))
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(name, "$") {
		return call.Env.Lookup(strings.TrimPrefix(name, "$"))
	}
	v, err := call.Env.Column(name)
	if err != nil {
		return nil, err
	}
	b, ok := v.(rdfio.Binding)
	if !ok {
		return v, nil
	}
	return b.Term()
}

var variableDesc = algebra.Descriptor{
	Name: "Variable",
	Doc:  "Binds a value to a name in the innermost scope. Returns nothing.",
	Params: []algebra.Param{
		{Name: "name", Doc: "The variable name to bind (without $ prefix).", Shape: shape.String()},
		{Name: "value", Doc: "The value to bind.", Shape: shape.Any()},
	},
}

func opVariable(ctx context.Context, call *algebra.Call) (any, error) {
	name := call.String("name", "")
	call.Env.Define(name, call.Arg("value"))
	return nil, nil
}

var currentDesc = algebra.Descriptor{
	Name:   "Current",
	Doc:    "Returns the current row of the enclosing iteration.",
	Params: nil,
}

func opCurrent(ctx context.Context, call *algebra.Call) (any, error) {
	row, ok := call.Env.Row()
	if !ok {
		return nil, &algebra.MissingBindingError{Scope: "row"}
	}
	return row, nil
}

var forEachDesc = algebra.Descriptor{
	Name: "ForEach",
	Doc:  "Evaluates an operation once per result row, in row order.",
	Params: []algebra.Param{
		{Name: "result", Doc: "The table whose rows drive the iteration.", Shape: shape.Result()},
		{Name: "operation", Doc: "The operation (or sequence of operations) evaluated per row.", Shape: shape.Operation(), Policy: algebra.Deferred},
	},
}

// opForEach pushes one scope for the whole iteration, so variables bound
// in earlier rows stay visible to later ones. The row is swapped in per
// row and the previous row restored before the next, also on failure.
func opForEach(ctx context.Context, call *algebra.Call) (any, error) {
	table, err := rdfio.AsResult(call.Arg("result"))
	if err != nil {
		return nil, err
	}
	node := call.Deferred["operation"]

	pop := call.Env.PushScope()
	defer pop()

	out := make([]any, 0, len(table.Rows))
	for i, row := range table.Rows {
		values, err := evalRow(ctx, call, node, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, values...)
	}
	return out, nil
}

func evalRow(ctx context.Context, call *algebra.Call, node algebra.Node, row rdfio.Row) (_ []any, err error) {
	restore := call.Env.SwapRow(row)
	defer restore()

	if seq, ok := node.(algebra.Sequence); ok {
		values := make([]any, 0, len(seq))
		for _, item := range seq {
			v, err := call.Eval.Evaluate(ctx, item, call.Env)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}
	v, err := call.Eval.Evaluate(ctx, node, call.Env)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}

var executeDesc = algebra.Descriptor{
	Name: "Execute",
	Doc:  "Evaluates an operation carried as data, e.g. one produced by a query or a language model.",
	Params: []algebra.Param{
		{Name: "operation", Doc: "The operation node to evaluate.", Shape: shape.Operation()},
	},
}

// opExecute decodes its already-evaluated argument back into a node and
// evaluates it in a fresh scope. A scalar that cannot form an invocation
// is rejected rather than returned as-is.
func opExecute(ctx context.Context, call *algebra.Call) (any, error) {
	node, err := algebra.Decode(call.Arg("operation"))
	if err != nil {
		return nil, err
	}
	switch node.(type) {
	case algebra.Invocation, algebra.Sequence:
	default:
		return nil, fmt.Errorf("operation argument is not an invocation")
	}

	pop := call.Env.PushScope()
	defer pop()
	return call.Eval.Evaluate(ctx, node, call.Env)
}
