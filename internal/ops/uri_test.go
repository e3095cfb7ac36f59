package ops

import (
	"context"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURIOp(t *testing.T) {
	got, err := opURI(context.Background(), callWith(map[string]any{
		"value": "https://example.org/a",
	}))
	require.NoError(t, err)
	term := got.(rdf.Term)
	assert.Equal(t, rdf.TermIRI, term.Type())
	assert.Equal(t, "https://example.org/a", term.String())
}

func TestResolveURI(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		relative string
		want     string
	}{
		{"child path", "https://example.org/blog/", "2024/", "https://example.org/blog/2024/"},
		{"absolute wins", "https://example.org/blog/", "https://other.org/x", "https://other.org/x"},
		{"parent reference", "https://example.org/a/b/", "../c", "https://example.org/a/c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := opResolveURI(context.Background(), callWith(map[string]any{
				"base":     tc.base,
				"relative": tc.relative,
			}))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.(rdf.Term).String())
		})
	}
}
