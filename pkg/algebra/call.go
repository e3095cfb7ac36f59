package algebra

import "context"

// Evaluator evaluates a node in an environment. Operations with deferred
// arguments use it to re-enter evaluation under their own scoping rules.
type Evaluator interface {
	Evaluate(ctx context.Context, n Node, env *Env) (any, error)
}

// Call is the resolved invocation handed to an operation body: validated
// eager argument values, raw deferred nodes, the current environment and
// the evaluator for re-entry.
type Call struct {
	Op       string
	Args     map[string]any
	Deferred map[string]Node
	Env      *Env
	Eval     Evaluator
}

// Arg returns the evaluated value of an eager argument, or nil when the
// argument was omitted.
func (c *Call) Arg(name string) any { return c.Args[name] }

// Has reports whether an eager argument was supplied.
func (c *Call) Has(name string) bool {
	_, ok := c.Args[name]
	return ok
}

// String returns an eager argument as a string, or def when omitted.
func (c *Call) String(name, def string) string {
	if v, ok := c.Args[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns an eager argument as a boolean, or def when omitted.
func (c *Call) Bool(name string, def bool) bool {
	if v, ok := c.Args[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns an eager argument as an integer, or def when omitted.
// JSON numbers arrive as float64; whole floats are accepted.
func (c *Call) Int(name string, def int) int {
	switch n := c.Args[name].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// OperationFunc is the signature of an operation body.
type OperationFunc func(ctx context.Context, call *Call) (any, error)
