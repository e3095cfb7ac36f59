package rdfio

import "github.com/knakk/rdf"

// ToJSON lowers an evaluation result to plain JSON-marshalable values:
// results to the SPARQL JSON format, graphs to JSON-LD, terms to bindings.
// Plain literals pass through unchanged.
func ToJSON(v any) (any, error) {
	switch x := v.(type) {
	case *Result:
		return x, nil
	case *Graph:
		return x.JSONLD()
	case rdf.Term:
		return NewBinding(x), nil
	case Binding:
		return x, nil
	case Row:
		return map[string]Binding(x), nil
	case []Row:
		out := make([]any, len(x))
		for i, row := range x {
			out[i] = map[string]Binding(row)
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			j, err := ToJSON(item)
			if err != nil {
				return nil, err
			}
			out[i] = j
		}
		return out, nil
	default:
		return v, nil
	}
}
