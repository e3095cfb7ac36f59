package rdfio

import (
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingTerm(t *testing.T) {
	t.Run("URI", func(t *testing.T) {
		term, err := Binding{Type: "uri", Value: "http://example.org/a"}.Term()
		require.NoError(t, err)
		assert.Equal(t, rdf.TermIRI, term.Type())
		assert.Equal(t, "http://example.org/a", term.String())
	})

	t.Run("Plain literal", func(t *testing.T) {
		term, err := Binding{Type: "literal", Value: "hello"}.Term()
		require.NoError(t, err)
		assert.Equal(t, rdf.TermLiteral, term.Type())
		assert.Equal(t, "hello", term.String())
	})

	t.Run("Language-tagged literal", func(t *testing.T) {
		term, err := Binding{Type: "literal", Value: "hej", Lang: "da"}.Term()
		require.NoError(t, err)
		lit, ok := term.(rdf.Literal)
		require.True(t, ok)
		assert.Equal(t, "da", lit.Lang())
	})

	t.Run("Typed literal", func(t *testing.T) {
		term, err := Binding{
			Type:     "literal",
			Value:    "42",
			Datatype: "http://www.w3.org/2001/XMLSchema#integer",
		}.Term()
		require.NoError(t, err)
		lit, ok := term.(rdf.Literal)
		require.True(t, ok)
		assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", lit.DataType.String())
	})

	t.Run("Blank node", func(t *testing.T) {
		term, err := Binding{Type: "bnode", Value: "b1"}.Term()
		require.NoError(t, err)
		assert.Equal(t, rdf.TermBlank, term.Type())
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := Binding{Type: "thing", Value: "x"}.Term()
		assert.Error(t, err)
	})
}

func TestNewBindingRoundtrip(t *testing.T) {
	iri, err := rdf.NewIRI("http://example.org/a")
	require.NoError(t, err)

	b := NewBinding(iri)
	assert.Equal(t, Binding{Type: "uri", Value: "http://example.org/a"}, b)

	term, err := b.Term()
	require.NoError(t, err)
	assert.Equal(t, rdf.TermIRI, term.Type())
	assert.Equal(t, iri.String(), term.String())
}

func TestDecodeBinding(t *testing.T) {
	b, err := DecodeBinding(map[string]any{
		"type":     "literal",
		"value":    "hej",
		"xml:lang": "da",
	})
	require.NoError(t, err)
	assert.Equal(t, Binding{Type: "literal", Value: "hej", Lang: "da"}, b)

	_, err = DecodeBinding(map[string]any{"value": "no type"})
	assert.Error(t, err)
}

func TestTermFromAny(t *testing.T) {
	t.Run("String becomes a plain literal", func(t *testing.T) {
		term, err := TermFromAny("hello")
		require.NoError(t, err)
		assert.Equal(t, rdf.TermLiteral, term.Type())
	})

	t.Run("Binding map becomes its term", func(t *testing.T) {
		term, err := TermFromAny(map[string]any{"type": "uri", "value": "http://example.org/a"})
		require.NoError(t, err)
		assert.Equal(t, rdf.TermIRI, term.Type())
	})

	t.Run("Numbers become typed literals", func(t *testing.T) {
		term, err := TermFromAny(float64(3))
		require.NoError(t, err)
		assert.Equal(t, rdf.TermLiteral, term.Type())
	})
}

func TestLexical(t *testing.T) {
	iri, err := rdf.NewIRI("http://example.org/a")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"term", iri, "http://example.org/a"},
		{"binding", Binding{Type: "literal", Value: "x"}, "x"},
		{"binding map", map[string]any{"type": "uri", "value": "http://example.org/b"}, "http://example.org/b"},
		{"bool", true, "true"},
		{"whole number", float64(42), "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Lexical(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err = Lexical([]any{"no"})
	assert.Error(t, err)
}
