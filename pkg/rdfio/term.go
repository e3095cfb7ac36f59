package rdfio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knakk/rdf"
	"github.com/mitchellh/mapstructure"
)

// Reserved datatype IRIs used when converting plain JSON scalars to terms.
const (
	XSDString  = "http://www.w3.org/2001/XMLSchema#string"
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDouble  = "http://www.w3.org/2001/XMLSchema#double"
	XSDBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// Binding is a single RDF term in the SPARQL 1.1 Query Results JSON shape:
// {"type": "uri"|"literal"|"bnode", "value": "...", "xml:lang": "...", "datatype": "..."}.
type Binding struct {
	Type     string `json:"type" mapstructure:"type"`
	Value    string `json:"value" mapstructure:"value"`
	Lang     string `json:"xml:lang,omitempty" mapstructure:"xml:lang"`
	Datatype string `json:"datatype,omitempty" mapstructure:"datatype"`
}

// Term converts the binding to an RDF term.
func (b Binding) Term() (rdf.Term, error) {
	switch b.Type {
	case "uri":
		return rdf.NewIRI(b.Value)
	case "literal", "typed-literal":
		if b.Lang != "" {
			return rdf.NewLangLiteral(b.Value, b.Lang)
		}
		if b.Datatype != "" {
			dt, err := rdf.NewIRI(b.Datatype)
			if err != nil {
				return nil, fmt.Errorf("binding datatype: %w", err)
			}
			return rdf.NewTypedLiteral(b.Value, dt), nil
		}
		return rdf.NewLiteral(b.Value)
	case "bnode":
		return rdf.NewBlank(b.Value)
	default:
		return nil, fmt.Errorf("unknown binding type %q", b.Type)
	}
}

// NewBinding converts an RDF term to its SPARQL JSON binding shape.
func NewBinding(t rdf.Term) Binding {
	switch t.Type() {
	case rdf.TermIRI:
		return Binding{Type: "uri", Value: t.String()}
	case rdf.TermBlank:
		return Binding{Type: "bnode", Value: strings.TrimPrefix(t.String(), "_:")}
	default:
		lit := t.(rdf.Literal)
		b := Binding{Type: "literal", Value: lit.String()}
		if lang := lit.Lang(); lang != "" {
			b.Lang = lang
		} else if dt := lit.DataType.String(); dt != "" && dt != XSDString {
			b.Datatype = dt
		}
		return b
	}
}

// IsBindingMap reports whether v looks like a SPARQL JSON binding: a mapping
// with string "type" and "value" entries.
func IsBindingMap(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, hasType := m["type"].(string)
	_, hasValue := m["value"].(string)
	return hasType && hasValue
}

// DecodeBinding decodes a binding-shaped mapping into a Binding.
func DecodeBinding(v any) (Binding, error) {
	var b Binding
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &b,
		ErrorUnused: false,
	})
	if err != nil {
		return b, err
	}
	if err := dec.Decode(v); err != nil {
		return b, fmt.Errorf("decode binding: %w", err)
	}
	if b.Type == "" || b.Value == "" {
		return b, fmt.Errorf("binding requires type and value, got %v", v)
	}
	return b, nil
}

// TermFromAny converts a value produced by evaluation to an RDF term.
// Accepted inputs: an rdf.Term, a Binding or binding-shaped mapping, and
// plain JSON scalars (mapped to xsd-typed literals).
func TermFromAny(v any) (rdf.Term, error) {
	switch x := v.(type) {
	case rdf.Term:
		return x, nil
	case Binding:
		return x.Term()
	case map[string]any:
		b, err := DecodeBinding(x)
		if err != nil {
			return nil, err
		}
		return b.Term()
	case string:
		return rdf.NewLiteral(x)
	case bool:
		dt, _ := rdf.NewIRI(XSDBoolean)
		return rdf.NewTypedLiteral(strconv.FormatBool(x), dt), nil
	case int:
		dt, _ := rdf.NewIRI(XSDInteger)
		return rdf.NewTypedLiteral(strconv.Itoa(x), dt), nil
	case int64:
		dt, _ := rdf.NewIRI(XSDInteger)
		return rdf.NewTypedLiteral(strconv.FormatInt(x, 10), dt), nil
	case float64:
		if x == float64(int64(x)) {
			dt, _ := rdf.NewIRI(XSDInteger)
			return rdf.NewTypedLiteral(strconv.FormatInt(int64(x), 10), dt), nil
		}
		dt, _ := rdf.NewIRI(XSDDouble)
		return rdf.NewTypedLiteral(strconv.FormatFloat(x, 'g', -1, 64), dt), nil
	default:
		return nil, fmt.Errorf("cannot convert %T to an RDF term", v)
	}
}

// Lexical returns the lexical form of a string-compatible value: a Go
// string, an RDF term, or a binding-shaped mapping. Following SPARQL STR()
// semantics, IRIs yield their IRI string and literals their lexical value.
func Lexical(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case rdf.Term:
		return x.String(), nil
	case Binding:
		return x.Value, nil
	case map[string]any:
		b, err := DecodeBinding(x)
		if err != nil {
			return "", err
		}
		return b.Value, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10), nil
		}
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("cannot take the string value of %T", v)
	}
}

// Row is the active binding row exposed to unprefixed variable lookups
// during row iteration: projected variable name to term.
type Row map[string]Binding

// Term resolves a projected variable in the row.
func (r Row) Term(name string) (rdf.Term, error) {
	b, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("variable %q not bound in row", name)
	}
	return b.Term()
}

// RowFromAny converts a row-shaped mapping (variable name to binding) to a Row.
func RowFromAny(v any) (Row, error) {
	switch x := v.(type) {
	case Row:
		return x, nil
	case map[string]Binding:
		return Row(x), nil
	case map[string]any:
		row := make(Row, len(x))
		for name, cell := range x {
			b, err := DecodeBinding(cell)
			if err != nil {
				return nil, fmt.Errorf("row variable %q: %w", name, err)
			}
			row[name] = b
		}
		return row, nil
	default:
		return nil, fmt.Errorf("expected a row mapping, got %T", v)
	}
}
