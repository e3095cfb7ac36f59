package algebra

import (
	"encoding/json"
	"fmt"
)

// Wire format keys. Every invocation is a mapping carrying exactly one
// discriminator key (the operation name) and one arguments mapping.
const (
	OpKey   = "@op"
	ArgsKey = "args"
)

// Node is the closed tagged variant over the JSON value space. A decoded
// workflow document is a tree of Literal, Invocation and Sequence nodes.
type Node interface {
	node()
}

// Literal is any JSON scalar, mapping or sequence that does not match the
// invocation shape. Literals are opaque: an invocation mapping nested
// inside a literal mapping is not auto-evaluated.
type Literal struct {
	Value any
}

// Invocation is a named operation call with an arguments mapping.
type Invocation struct {
	Op   string
	Args map[string]Node
}

// Sequence is an ordered list of nodes, used both as a plain literal list
// and as a sequential-operations argument.
type Sequence []Node

func (Literal) node()    {}
func (Invocation) node() {}
func (Sequence) node()   {}

// Decode converts a decoded JSON value into a Node. A mapping is an
// invocation iff it carries the @op key; a mapping carrying @op in any
// other shape (non-string name, extra keys, malformed args) is a hard
// error, never a literal. Whether the name is registered is checked at
// evaluation time.
func Decode(v any) (Node, error) {
	switch x := v.(type) {
	case map[string]any:
		if _, ok := x[OpKey]; ok {
			return decodeInvocation(x)
		}
		return Literal{Value: x}, nil
	case []any:
		seq := make(Sequence, len(x))
		for i, item := range x {
			n, err := Decode(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i+1, err)
			}
			seq[i] = n
		}
		return seq, nil
	default:
		return Literal{Value: v}, nil
	}
}

// DecodeJSON parses a serialized workflow document into a Node.
func DecodeJSON(data []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return Decode(v)
}

func decodeInvocation(m map[string]any) (Node, error) {
	name, ok := m[OpKey].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("invocation %s key must be a non-empty string, got %v", OpKey, m[OpKey])
	}
	for key := range m {
		if key != OpKey && key != ArgsKey {
			return nil, fmt.Errorf("invocation of %q carries unexpected key %q", name, key)
		}
	}
	inv := Invocation{Op: name, Args: map[string]Node{}}
	if rawArgs, ok := m[ArgsKey]; ok {
		args, ok := rawArgs.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invocation of %q: %s must be a mapping, got %T", name, ArgsKey, rawArgs)
		}
		for argName, argValue := range args {
			n, err := Decode(argValue)
			if err != nil {
				return nil, fmt.Errorf("invocation of %q, argument %q: %w", name, argName, err)
			}
			inv.Args[argName] = n
		}
	}
	return inv, nil
}

// Encode converts a Node back to its JSON value form.
func Encode(n Node) any {
	switch x := n.(type) {
	case Literal:
		return x.Value
	case Sequence:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Encode(item)
		}
		return out
	case Invocation:
		args := make(map[string]any, len(x.Args))
		for name, arg := range x.Args {
			args[name] = Encode(arg)
		}
		return map[string]any{OpKey: x.Op, ArgsKey: args}
	default:
		return nil
	}
}
