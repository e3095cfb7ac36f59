package rdfio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"
)

// Graph is an unordered, deduplicated set of triples. Insertion order is
// kept for stable serialization, but has no semantic meaning.
type Graph struct {
	triples []rdf.Triple
	index   map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]struct{})}
}

// Add inserts a triple, ignoring exact duplicates.
func (g *Graph) Add(t rdf.Triple) {
	key := t.Serialize(rdf.NTriples)
	if _, ok := g.index[key]; ok {
		return
	}
	g.index[key] = struct{}{}
	g.triples = append(g.triples, t)
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the triples in insertion order.
func (g *Graph) Triples() []rdf.Triple {
	out := make([]rdf.Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// NTriples serializes the graph as N-Triples.
func (g *Graph) NTriples() string {
	var sb strings.Builder
	for _, t := range g.triples {
		sb.WriteString(t.Serialize(rdf.NTriples))
	}
	return sb.String()
}

// Merge unions graphs into a new graph. The operation is associative,
// commutative and idempotent: duplicate triples collapse.
func Merge(graphs ...*Graph) *Graph {
	merged := NewGraph()
	for _, g := range graphs {
		if g == nil {
			continue
		}
		for _, t := range g.triples {
			merged.Add(t)
		}
	}
	return merged
}

// DecodeGraph parses serialized triples (Turtle, N-Triples, RDF/XML) into a graph.
func DecodeGraph(r io.Reader, format rdf.Format) (*Graph, error) {
	dec := rdf.NewTripleDecoder(r, format)
	triples, err := dec.DecodeAll()
	if err != nil {
		return nil, fmt.Errorf("decode triples: %w", err)
	}
	g := NewGraph()
	for _, t := range triples {
		g.Add(t)
	}
	return g, nil
}

// ParseJSONLD interprets a decoded JSON-LD document (mapping or sequence)
// as a graph.
func ParseJSONLD(doc any) (*Graph, error) {
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	out, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("parse JSON-LD: %w", err)
	}
	nquads, ok := out.(string)
	if !ok {
		return nil, fmt.Errorf("parse JSON-LD: unexpected %T from processor", out)
	}
	if strings.TrimSpace(nquads) == "" {
		return NewGraph(), nil
	}
	return DecodeGraph(strings.NewReader(nquads), rdf.NTriples)
}

// ParseJSONLDBytes parses a serialized JSON-LD document.
func ParseJSONLDBytes(data []byte) (*Graph, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse JSON-LD: %w", err)
	}
	return ParseJSONLD(doc)
}

// JSONLD serializes the graph as an expanded JSON-LD document.
func (g *Graph) JSONLD() (any, error) {
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.InputFormat = "application/n-quads"
	doc, err := proc.FromRDF(g.NTriples(), opts)
	if err != nil {
		return nil, fmt.Errorf("serialize JSON-LD: %w", err)
	}
	return doc, nil
}

// AsGraph coerces a value to a Graph. Accepted forms: a *Graph and a
// JSON-LD-shaped literal (mapping or sequence of mappings).
func AsGraph(v any) (*Graph, error) {
	switch x := v.(type) {
	case *Graph:
		return x, nil
	case map[string]any:
		return ParseJSONLD(x)
	case []any:
		return ParseJSONLD(x)
	default:
		return nil, fmt.Errorf("expected a graph, got %T", v)
	}
}
