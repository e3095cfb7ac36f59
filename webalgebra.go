package webalgebra

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/atomgraph/webalgebra/internal/adapters/linkeddata"
	"github.com/atomgraph/webalgebra/internal/adapters/sparqlhttp"
	"github.com/atomgraph/webalgebra/internal/interp"
	"github.com/atomgraph/webalgebra/internal/logging"
	"github.com/atomgraph/webalgebra/internal/ops"
	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/observability"
	"github.com/atomgraph/webalgebra/pkg/ports"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
)

// Engine is the high-level entry point for the library. It owns the
// operation registry and the evaluator, and wires the default HTTP
// clients unless replaced via options.
type Engine struct {
	reg        *registry.Registry
	interp     *interp.Interp
	logger     *slog.Logger
	metrics    observability.Metrics
	linkedData ports.LinkedDataClient
	sparql     ports.SPARQLClient
	translator ports.Translator
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the metrics backend.
func WithMetrics(m observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLinkedDataClient injects a custom Linked Data client.
func WithLinkedDataClient(c ports.LinkedDataClient) Option {
	return func(e *Engine) { e.linkedData = c }
}

// WithSPARQLClient injects a custom SPARQL client.
func WithSPARQLClient(c ports.SPARQLClient) Option {
	return func(e *Engine) { e.sparql = c }
}

// WithTranslator injects a language model translator; without one the
// SPARQLString operation and Ask fail with a configuration error.
func WithTranslator(t ports.Translator) Option {
	return func(e *Engine) { e.translator = t }
}

// New initializes an Engine with every built-in operation registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  logging.NewNop(),
		metrics: observability.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.linkedData == nil {
		e.linkedData = linkeddata.New(linkeddata.WithLogger(e.logger))
	}
	if e.sparql == nil {
		e.sparql = sparqlhttp.New(sparqlhttp.WithLogger(e.logger))
	}

	e.reg = registry.New()
	ops.RegisterAll(e.reg, ops.Deps{
		LinkedData: e.linkedData,
		SPARQL:     e.sparql,
		Translator: e.translator,
		Log:        e.logger,
	})
	e.interp = interp.New(e.reg, interp.WithLogger(e.logger), interp.WithMetrics(e.metrics))
	return e
}

// Evaluate evaluates a decoded workflow document (a JSON value) in a
// fresh environment and returns the raw evaluation result: terms, graphs,
// result tables and plain values.
func (e *Engine) Evaluate(ctx context.Context, doc any) (any, error) {
	return e.interp.EvaluateDocument(ctx, doc)
}

// EvaluateDocument parses a serialized workflow document, evaluates it
// and lowers the result to plain JSON-marshalable values.
func (e *Engine) EvaluateDocument(ctx context.Context, data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	v, err := e.Evaluate(ctx, doc)
	if err != nil {
		return nil, err
	}
	return rdfio.ToJSON(v)
}

// Call invokes a single operation by name with plain JSON arguments, the
// way the MCP and HTTP tool surfaces do. Arguments are validated against
// the operation's declared shapes; deferred arguments are decoded into
// operation nodes. The call runs in a fresh environment.
func (e *Engine) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	op, err := e.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	desc := op.Descriptor

	for argName := range args {
		if _, ok := desc.Param(argName); !ok {
			return nil, fmt.Errorf("operation %q does not take argument %q", name, argName)
		}
	}

	call := &algebra.Call{
		Op:       name,
		Args:     map[string]any{},
		Deferred: map[string]algebra.Node{},
		Env:      algebra.NewEnv(),
		Eval:     e.interp,
	}
	for _, p := range desc.Params {
		v, supplied := args[p.Name]
		if !supplied {
			if p.Optional {
				continue
			}
			return nil, fmt.Errorf("operation %q: required argument %q missing", name, p.Name)
		}
		if err := p.Shape.Validate(v); err != nil {
			return nil, &algebra.TypeMismatchError{Op: name, Param: p.Name, Expected: p.Shape.Name(), Err: err}
		}
		if p.Policy == algebra.Deferred {
			node, err := algebra.Decode(v)
			if err != nil {
				return nil, fmt.Errorf("operation %q, argument %q: %w", name, p.Name, err)
			}
			call.Deferred[p.Name] = node
			continue
		}
		call.Args[p.Name] = v
	}

	out, err := op.Func(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", name, err)
	}
	return rdfio.ToJSON(out)
}

// Ask translates a natural-language instruction into a workflow document
// and evaluates it. The generated document is returned alongside the
// result so callers can show or store it.
func (e *Engine) Ask(ctx context.Context, instruction string) (doc any, result any, err error) {
	if e.translator == nil {
		return nil, nil, fmt.Errorf("no language model configured")
	}
	doc, err = e.translator.Workflow(ctx, instruction)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Info("generated workflow", "instruction", instruction)
	v, err := e.Evaluate(ctx, doc)
	if err != nil {
		return doc, nil, err
	}
	result, err = rdfio.ToJSON(v)
	return doc, result, err
}

// Operations returns the registered operation descriptors, sorted by name.
func (e *Engine) Operations() []algebra.Descriptor {
	return e.reg.List()
}
