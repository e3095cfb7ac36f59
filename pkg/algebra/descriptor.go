package algebra

import (
	"encoding/json"

	"github.com/atomgraph/webalgebra/pkg/shape"
)

// Policy tells the evaluator whether to evaluate an argument before
// invoking the operation or to hand over the unevaluated node.
type Policy int

const (
	// Eager arguments are evaluated depth-first before the operation runs.
	Eager Policy = iota
	// Deferred arguments are passed as unevaluated nodes; the operation
	// body decides when and how often to evaluate them.
	Deferred
)

// Param describes one named argument of an operation.
type Param struct {
	Name     string
	Doc      string
	Shape    shape.Shape
	Policy   Policy
	Optional bool
}

// Descriptor is the static description of an operation: its name, its
// documentation and its parameter list in declaration order.
type Descriptor struct {
	Name   string
	Doc    string
	Params []Param
}

// Param returns the parameter named name, if declared.
func (d Descriptor) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// InputSchema renders the descriptor's parameter list as a JSON Schema
// object, for the tool surfaces.
func (d Descriptor) InputSchema() map[string]any {
	props := map[string]any{}
	var required []any
	for _, p := range d.Params {
		s := p.Shape.Schema()
		if p.Doc != "" {
			s["description"] = p.Doc
		}
		props[p.Name] = s
		if !p.Optional {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// InputSchemaJSON renders InputSchema as raw JSON.
func (d Descriptor) InputSchemaJSON() json.RawMessage {
	data, err := json.Marshal(d.InputSchema())
	if err != nil {
		return json.RawMessage(`{"type":"object"}`)
	}
	return data
}
