package shape

import (
	"fmt"
	"net/url"

	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/knakk/rdf"
)

// Shape is the contract for argument validation.
type Shape interface {
	// Name returns the human-readable name of the shape (e.g. "string", "graph").
	Name() string
	// Validate checks whether a value conforms to this shape.
	Validate(value any) error
	// Schema returns a JSON Schema fragment describing the shape, used by
	// the tool surfaces (MCP, HTTP API).
	Schema() map[string]any
}

type shape struct {
	name     string
	schema   map[string]any
	validate func(any) error
}

func (s *shape) Name() string             { return s.name }
func (s *shape) Validate(value any) error { return s.validate(value) }
func (s *shape) Schema() map[string]any {
	out := make(map[string]any, len(s.schema))
	for k, v := range s.schema {
		out[k] = v
	}
	return out
}

// Describe names the shape of an arbitrary runtime value, for error messages.
func Describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case rdf.Term:
		return "term"
	case rdfio.Binding:
		return "term"
	case rdfio.Row:
		return "row"
	case []rdfio.Row:
		return "sequence of row"
	case *rdfio.Result:
		return "result"
	case *rdfio.Graph:
		return "graph"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// String accepts a plain string.
func String() Shape {
	return &shape{
		name:   "string",
		schema: map[string]any{"type": "string"},
		validate: func(v any) error {
			if _, ok := v.(string); !ok {
				return fmt.Errorf("expected string, got %s", Describe(v))
			}
			return nil
		},
	}
}

// Bool accepts a plain boolean.
func Bool() Shape {
	return &shape{
		name:   "boolean",
		schema: map[string]any{"type": "boolean"},
		validate: func(v any) error {
			if _, ok := v.(bool); !ok {
				return fmt.Errorf("expected boolean, got %s", Describe(v))
			}
			return nil
		},
	}
}

// Int accepts integral numbers (including whole JSON floats).
func Int() Shape {
	return &shape{
		name:   "integer",
		schema: map[string]any{"type": "integer"},
		validate: func(v any) error {
			switch n := v.(type) {
			case int, int64:
				return nil
			case float64:
				if n == float64(int64(n)) {
					return nil
				}
				return fmt.Errorf("expected integer, got fractional number")
			default:
				return fmt.Errorf("expected integer, got %s", Describe(v))
			}
		},
	}
}

// Any accepts every value.
func Any() Shape {
	return &shape{
		name:     "any",
		schema:   map[string]any{},
		validate: func(any) error { return nil },
	}
}

// Text accepts string-compatible values: strings, terms and term mappings.
func Text() Shape {
	return &shape{
		name:   "string or term",
		schema: map[string]any{"type": "string"},
		validate: func(v any) error {
			if _, err := rdfio.Lexical(v); err != nil {
				return fmt.Errorf("expected string or term, got %s", Describe(v))
			}
			return nil
		},
	}
}

// URI accepts an absolute URI, given as a string, a term or a term mapping.
func URI() Shape {
	return &shape{
		name:   "URI",
		schema: map[string]any{"type": "string", "format": "uri"},
		validate: func(v any) error {
			s, err := rdfio.Lexical(v)
			if err != nil {
				return fmt.Errorf("expected URI, got %s", Describe(v))
			}
			u, err := url.Parse(s)
			if err != nil || !u.IsAbs() {
				return fmt.Errorf("expected absolute URI, got %q", s)
			}
			return nil
		},
	}
}

// Term accepts an RDF term or a term-shaped mapping ({"type":..., "value":...}).
func Term() Shape {
	return &shape{
		name: "term",
		schema: map[string]any{
			"type":     "object",
			"required": []any{"type", "value"},
			"properties": map[string]any{
				"type":     map[string]any{"type": "string", "enum": []any{"uri", "literal", "bnode"}},
				"value":    map[string]any{"type": "string"},
				"xml:lang": map[string]any{"type": "string"},
				"datatype": map[string]any{"type": "string"},
			},
		},
		validate: func(v any) error {
			switch x := v.(type) {
			case rdf.Term, rdfio.Binding:
				return nil
			case map[string]any:
				if _, err := rdfio.DecodeBinding(x); err != nil {
					return fmt.Errorf("expected term, got %s", Describe(v))
				}
				return nil
			default:
				return fmt.Errorf("expected term, got %s", Describe(v))
			}
		},
	}
}

// Graph accepts a materialized graph or a JSON-LD-shaped literal.
func Graph() Shape {
	return &shape{
		name:   "graph",
		schema: map[string]any{"type": "object", "description": "RDF graph as JSON-LD"},
		validate: func(v any) error {
			switch v.(type) {
			case *rdfio.Graph, map[string]any, []any:
				return nil
			default:
				return fmt.Errorf("expected graph, got %s", Describe(v))
			}
		},
	}
}

// Result accepts a materialized result table, a SPARQL-results-shaped
// mapping, or a sequence of row mappings.
func Result() Shape {
	return &shape{
		name:   "result",
		schema: map[string]any{"type": "object", "description": "SPARQL results table"},
		validate: func(v any) error {
			if _, err := rdfio.AsResult(v); err != nil {
				return fmt.Errorf("expected result table: %v", err)
			}
			return nil
		},
	}
}

// Sequence accepts an ordered list whose elements conform to elem.
func Sequence(elem Shape) Shape {
	return &shape{
		name:   fmt.Sprintf("sequence of %s", elem.Name()),
		schema: map[string]any{"type": "array", "items": elem.Schema()},
		validate: func(v any) error {
			items, ok := v.([]any)
			if !ok {
				return fmt.Errorf("expected sequence of %s, got %s", elem.Name(), Describe(v))
			}
			for i, item := range items {
				if err := elem.Validate(item); err != nil {
					return fmt.Errorf("element %d: %w", i+1, err)
				}
			}
			return nil
		},
	}
}

// Operation accepts an operation node carried as data: an invocation
// mapping or a sequence of invocation mappings. Used by arguments that are
// evaluated by the operation body itself, not by the evaluator.
func Operation() Shape {
	return &shape{
		name: "operation",
		schema: map[string]any{
			"type":        "object",
			"description": "An operation invocation: {\"@op\": name, \"args\": {...}}",
		},
		validate: func(v any) error {
			switch v.(type) {
			case map[string]any, []any:
				return nil
			default:
				return fmt.Errorf("expected operation node, got %s", Describe(v))
			}
		},
	}
}
