package rdfio

import (
	"strings"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTriple(t *testing.T, s, p, o string) rdf.Triple {
	t.Helper()
	subj, err := rdf.NewIRI(s)
	require.NoError(t, err)
	pred, err := rdf.NewIRI(p)
	require.NoError(t, err)
	obj, err := rdf.NewIRI(o)
	require.NoError(t, err)
	return rdf.Triple{Subj: subj, Pred: pred, Obj: obj}
}

func TestGraphDeduplicates(t *testing.T) {
	g := NewGraph()
	tr := mustTriple(t, "http://example.org/s", "http://example.org/p", "http://example.org/o")
	g.Add(tr)
	g.Add(tr)
	assert.Equal(t, 1, g.Len())
}

func TestMerge(t *testing.T) {
	t1 := mustTriple(t, "http://example.org/a", "http://example.org/p", "http://example.org/b")
	t2 := mustTriple(t, "http://example.org/c", "http://example.org/p", "http://example.org/d")

	g1 := NewGraph()
	g1.Add(t1)
	g2 := NewGraph()
	g2.Add(t1)
	g2.Add(t2)

	t.Run("Idempotent on duplicates", func(t *testing.T) {
		assert.Equal(t, g1.Len(), Merge(g1, g1).Len())
	})

	t.Run("Commutative", func(t *testing.T) {
		assert.Equal(t, Merge(g1, g2).Len(), Merge(g2, g1).Len())
	})

	t.Run("Inputs are untouched", func(t *testing.T) {
		Merge(g1, g2)
		assert.Equal(t, 1, g1.Len())
		assert.Equal(t, 2, g2.Len())
	})
}

func TestDecodeGraph(t *testing.T) {
	nt := `<http://example.org/a> <http://example.org/p> "hello" .
<http://example.org/a> <http://example.org/p> "hello" .
`
	g, err := DecodeGraph(strings.NewReader(nt), rdf.NTriples)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
	assert.Contains(t, g.NTriples(), "<http://example.org/a>")
}

func TestParseJSONLD(t *testing.T) {
	doc := map[string]any{
		"@context":  map[string]any{"dct": "http://purl.org/dc/terms/"},
		"@id":       "http://example.org/doc",
		"dct:title": "Hello",
	}
	g, err := ParseJSONLD(doc)
	require.NoError(t, err)
	require.Equal(t, 1, g.Len())
	assert.Contains(t, g.NTriples(), "<http://purl.org/dc/terms/title>")
}

func TestAsGraph(t *testing.T) {
	g := NewGraph()
	got, err := AsGraph(g)
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = AsGraph(42)
	assert.Error(t, err)
}
