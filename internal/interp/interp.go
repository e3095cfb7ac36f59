// Package interp implements the tree evaluator: depth-first evaluation of
// operation nodes against the registry, with per-argument eager/deferred
// policy taken from the operation descriptors.
package interp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atomgraph/webalgebra/internal/logging"
	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/observability"
	"github.com/atomgraph/webalgebra/pkg/registry"
)

// Interp evaluates operation trees. It is single-threaded per evaluation:
// one environment is threaded through the whole tree.
type Interp struct {
	reg     *registry.Registry
	log     *slog.Logger
	metrics observability.Metrics
}

// Option configures an Interp.
type Option func(*Interp)

// WithLogger sets the evaluation logger.
func WithLogger(log *slog.Logger) Option {
	return func(it *Interp) { it.log = log }
}

// WithMetrics sets the metrics backend.
func WithMetrics(m observability.Metrics) Option {
	return func(it *Interp) { it.metrics = m }
}

// New creates an interpreter over a registry.
func New(reg *registry.Registry, opts ...Option) *Interp {
	it := &Interp{
		reg:     reg,
		log:     logging.NewNop(),
		metrics: observability.Nop(),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Evaluate evaluates a node in an environment. Literals evaluate to their
// carried value, sequences element-wise in order, invocations by resolving
// the operation and applying its argument policy.
func (it *Interp) Evaluate(ctx context.Context, n algebra.Node, env *algebra.Env) (any, error) {
	switch x := n.(type) {
	case algebra.Literal:
		return x.Value, nil
	case algebra.Sequence:
		out := make([]any, len(x))
		for i, item := range x {
			v, err := it.Evaluate(ctx, item, env)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i+1, err)
			}
			out[i] = v
		}
		return out, nil
	case algebra.Invocation:
		return it.invoke(ctx, x, env)
	default:
		return nil, fmt.Errorf("unexpected node type %T", n)
	}
}

// EvaluateDocument decodes a raw JSON value and evaluates it in a fresh
// environment.
func (it *Interp) EvaluateDocument(ctx context.Context, doc any) (any, error) {
	start := time.Now()
	n, err := algebra.Decode(doc)
	if err != nil {
		it.metrics.ObserveDocument(time.Since(start), err)
		return nil, err
	}
	v, err := it.Evaluate(ctx, n, algebra.NewEnv())
	it.metrics.ObserveDocument(time.Since(start), err)
	return v, err
}

func (it *Interp) invoke(ctx context.Context, inv algebra.Invocation, env *algebra.Env) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	op, err := it.reg.Lookup(inv.Op)
	if err != nil {
		return nil, err
	}
	desc := op.Descriptor

	for name := range inv.Args {
		if _, ok := desc.Param(name); !ok {
			return nil, fmt.Errorf("operation %q does not take argument %q", inv.Op, name)
		}
	}

	call := &algebra.Call{
		Op:       inv.Op,
		Args:     map[string]any{},
		Deferred: map[string]algebra.Node{},
		Env:      env,
		Eval:     it,
	}

	// Eager arguments are evaluated depth-first in declaration order,
	// before any shape is checked.
	for _, p := range desc.Params {
		node, supplied := inv.Args[p.Name]
		if !supplied {
			if p.Optional {
				continue
			}
			return nil, fmt.Errorf("operation %q: required argument %q missing", inv.Op, p.Name)
		}
		if p.Policy == algebra.Deferred {
			call.Deferred[p.Name] = node
			continue
		}
		v, err := it.Evaluate(ctx, node, env)
		if err != nil {
			return nil, fmt.Errorf("operation %q, argument %q: %w", inv.Op, p.Name, err)
		}
		call.Args[p.Name] = v
	}

	// Shapes are checked only after every eager argument evaluated.
	for _, p := range desc.Params {
		if v, ok := call.Args[p.Name]; ok {
			if err := p.Shape.Validate(v); err != nil {
				return nil, &algebra.TypeMismatchError{Op: inv.Op, Param: p.Name, Expected: p.Shape.Name(), Err: err}
			}
		}
		if node, ok := call.Deferred[p.Name]; ok {
			if err := p.Shape.Validate(algebra.Encode(node)); err != nil {
				return nil, &algebra.TypeMismatchError{Op: inv.Op, Param: p.Name, Expected: p.Shape.Name(), Err: err}
			}
		}
	}

	it.log.Debug("invoking operation", "op", inv.Op, "depth", env.Depth())
	start := time.Now()
	v, err := op.Func(ctx, call)
	it.metrics.ObserveOperation(inv.Op, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", inv.Op, err)
	}
	return v, nil
}
