package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

func TestGet(t *testing.T) {
	g := graphWith(t, "http://example.org/a")
	ld := &fakeLinkedData{byURI: map[string]*rdfio.Graph{"https://example.org/doc": g}}
	op := opGet(Deps{LinkedData: ld})

	t.Run("Returns the dereferenced graph", func(t *testing.T) {
		got, err := op(context.Background(), callWith(map[string]any{
			"url": "https://example.org/doc",
		}))
		require.NoError(t, err)
		assert.Same(t, g, got)
	})

	t.Run("Propagates fetch failures", func(t *testing.T) {
		_, err := op(context.Background(), callWith(map[string]any{
			"url": "https://example.org/missing",
		}))
		assert.Error(t, err)
	})
}

func TestPost(t *testing.T) {
	ld := &fakeLinkedData{}
	op := opPost(Deps{LinkedData: ld})

	got, err := op(context.Background(), callWith(map[string]any{
		"url":  "https://example.org/container/",
		"data": graphWith(t, "http://example.org/a"),
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/container/", ld.postURI)
	assert.Equal(t, 1, ld.postGraph.Len())

	res := got.(*rdfio.Result)
	assert.Equal(t, "201", res.Rows[0]["status"].Value)
	assert.Equal(t, "https://example.org/container/", res.Rows[0]["url"].Value)
}

func TestPut(t *testing.T) {
	ld := &fakeLinkedData{}
	op := opPut(Deps{LinkedData: ld})

	// JSON-LD-shaped data is materialized into a graph before the write.
	_, err := op(context.Background(), callWith(map[string]any{
		"url": "https://example.org/doc",
		"data": map[string]any{
			"@id":                            "https://example.org/doc",
			"http://purl.org/dc/terms/title": "Hello",
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/doc", ld.putURI)
	assert.Equal(t, 1, ld.putGraph.Len())
}

func TestPatch(t *testing.T) {
	ld := &fakeLinkedData{}
	op := opPatch(Deps{LinkedData: ld})

	got, err := op(context.Background(), callWith(map[string]any{
		"url":    "https://example.org/doc",
		"update": "INSERT DATA { <a> <b> <c> }",
	}))
	require.NoError(t, err)
	assert.Equal(t, "INSERT DATA { <a> <b> <c> }", ld.patched)
	assert.Equal(t, "204", got.(*rdfio.Result).Rows[0]["status"].Value)
}

func TestDelete(t *testing.T) {
	ld := &fakeLinkedData{}
	op := opDelete(Deps{LinkedData: ld})

	_, err := op(context.Background(), callWith(map[string]any{
		"url": "https://example.org/doc",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/doc", ld.deleted)
}
