package rdfio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/knakk/sparql"
)

// Result is a tabular SPARQL-style outcome: the ordered projection plus
// ordered binding rows. Row order is significant and preserved end to end.
type Result struct {
	Vars []string
	Rows []Row
}

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.Rows) }

// resultJSON mirrors the SPARQL 1.1 Query Results JSON format.
type resultJSON struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Binding `json:"bindings"`
	} `json:"results"`
}

// DecodeResult parses a SPARQL results JSON document.
func DecodeResult(data []byte) (*Result, error) {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse SPARQL results: %w", err)
	}
	res := &Result{Vars: raw.Head.Vars}
	for _, row := range raw.Results.Bindings {
		res.Rows = append(res.Rows, Row(row))
	}
	return res, nil
}

// MarshalJSON renders the result in the SPARQL results JSON format.
func (r *Result) MarshalJSON() ([]byte, error) {
	var raw resultJSON
	raw.Head.Vars = r.Vars
	if raw.Head.Vars == nil {
		raw.Head.Vars = []string{}
	}
	raw.Results.Bindings = make([]map[string]Binding, len(r.Rows))
	for i, row := range r.Rows {
		raw.Results.Bindings[i] = map[string]Binding(row)
	}
	return json.Marshal(raw)
}

// FromSPARQL converts a knakk/sparql result set, preserving row order.
func FromSPARQL(res *sparql.Results) *Result {
	out := &Result{Vars: res.Head.Vars}
	for _, row := range res.Results.Bindings {
		r := make(Row, len(row))
		for name, b := range row {
			bd := Binding{Type: b.Type, Value: b.Value, Lang: b.Lang, Datatype: b.DataType}
			if bd.Type == "typed-literal" {
				bd.Type = "literal"
			}
			r[name] = bd
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// AsResult coerces a value to a Result. Accepted forms: a *Result, a
// SPARQL-results-shaped mapping ({"head":..., "results":{"bindings":[...]}}),
// and a sequence of row mappings (the Bindings operation output).
func AsResult(v any) (*Result, error) {
	switch x := v.(type) {
	case *Result:
		return x, nil
	case map[string]any:
		data, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("result mapping: %w", err)
		}
		results, ok := x["results"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("result mapping lacks a results.bindings entry")
		}
		if _, ok := results["bindings"].([]any); !ok {
			return nil, fmt.Errorf("result mapping lacks a results.bindings entry")
		}
		return DecodeResult(data)
	case []any:
		res := &Result{}
		seen := map[string]bool{}
		for i, item := range x {
			row, err := RowFromAny(item)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			res.Rows = append(res.Rows, row)
			for name := range row {
				if !seen[name] {
					seen[name] = true
					res.Vars = append(res.Vars, name)
				}
			}
		}
		return res, nil
	case []Row:
		res := &Result{}
		seen := map[string]bool{}
		for _, row := range x {
			res.Rows = append(res.Rows, row)
			for name := range row {
				if !seen[name] {
					seen[name] = true
					res.Vars = append(res.Vars, name)
				}
			}
		}
		return res, nil
	default:
		return nil, fmt.Errorf("expected a result table, got %T", v)
	}
}

// StatusResult wraps an HTTP response status in a single-row Result with
// "status" and "url" projections, the uniform outcome of write operations.
func StatusResult(status int, url string) *Result {
	return &Result{
		Vars: []string{"status", "url"},
		Rows: []Row{{
			"status": {Type: "literal", Value: strconv.Itoa(status), Datatype: XSDInteger},
			"url":    {Type: "uri", Value: url},
		}},
	}
}
