package ops

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

func TestCreateContainer(t *testing.T) {
	ld := &fakeLinkedData{}
	op := opCreateDocument(Deps{LinkedData: ld}, "dh:Container", true)

	got, err := op(context.Background(), callWith(map[string]any{
		"url":   "https://example.org/blog/",
		"title": "Blog",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/blog/", ld.putURI)
	nt := ld.putGraph.NTriples()
	assert.Contains(t, nt, "<https://www.w3.org/ns/ldt/document-hierarchy#Container>")
	assert.Contains(t, nt, `"Blog"`)
	// Containers get the default children-view block under rdf:_1.
	assert.Contains(t, nt, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#_1>")
	assert.Contains(t, nt, "<https://w3id.org/atomgraph/linkeddatahub#ChildrenView>")

	res := got.(*rdfio.Result)
	assert.Equal(t, "201", res.Rows[0]["status"].Value)
}

func TestCreateItem(t *testing.T) {
	ld := &fakeLinkedData{}
	op := opCreateDocument(Deps{LinkedData: ld}, "dh:Item", false)

	_, err := op(context.Background(), callWith(map[string]any{
		"url":         "https://example.org/blog/first-post/",
		"title":       "First post",
		"description": "Hello world",
	}))
	require.NoError(t, err)

	nt := ld.putGraph.NTriples()
	assert.Contains(t, nt, "<https://www.w3.org/ns/ldt/document-hierarchy#Item>")
	assert.Contains(t, nt, `"Hello world"`)
	assert.NotContains(t, nt, "ChildrenView")
}

func seqGraph(t *testing.T, doc string, indices ...int) *rdfio.Graph {
	t.Helper()
	g := rdfio.NewGraph()
	subj, err := rdf.NewIRI(doc)
	require.NoError(t, err)
	obj, err := rdf.NewBlank("b1")
	require.NoError(t, err)
	for _, n := range indices {
		pred, err := rdf.NewIRI(rdfSeqPrefix + strconv.Itoa(n))
		require.NoError(t, err)
		g.Add(rdf.Triple{Subj: subj, Pred: pred, Obj: obj})
	}
	return g
}

func TestAddObjectBlock(t *testing.T) {
	const doc = "https://example.org/blog/first-post/"

	t.Run("Appends after the highest sequence index", func(t *testing.T) {
		ld := &fakeLinkedData{byURI: map[string]*rdfio.Graph{
			doc: seqGraph(t, doc, 1, 2),
		}}
		op := opAddObjectBlock(Deps{LinkedData: ld})

		got, err := op(context.Background(), callWith(map[string]any{
			"url":   doc,
			"value": "https://example.org/media/photo.jpg",
		}))
		require.NoError(t, err)

		assert.Equal(t, doc, ld.postURI)
		nt := ld.postGraph.NTriples()
		assert.Contains(t, nt, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#_3>")
		assert.Contains(t, nt, "<https://example.org/media/photo.jpg>")

		res := got.(*rdfio.Result)
		assert.Equal(t, "201", res.Rows[0]["status"].Value)
	})

	t.Run("Starts at one on a document without blocks", func(t *testing.T) {
		ld := &fakeLinkedData{byURI: map[string]*rdfio.Graph{
			doc: rdfio.NewGraph(),
		}}
		op := opAddObjectBlock(Deps{LinkedData: ld})

		_, err := op(context.Background(), callWith(map[string]any{
			"url":   doc,
			"value": "https://example.org/media/photo.jpg",
		}))
		require.NoError(t, err)
		assert.Contains(t, ld.postGraph.NTriples(), "<http://www.w3.org/1999/02/22-rdf-syntax-ns#_1>")
	})

	t.Run("Fragment names the block node", func(t *testing.T) {
		ld := &fakeLinkedData{byURI: map[string]*rdfio.Graph{
			doc: rdfio.NewGraph(),
		}}
		op := opAddObjectBlock(Deps{LinkedData: ld})

		_, err := op(context.Background(), callWith(map[string]any{
			"url":      doc,
			"value":    "https://example.org/media/photo.jpg",
			"title":    "Photo",
			"fragment": "photo",
		}))
		require.NoError(t, err)

		nt := ld.postGraph.NTriples()
		assert.Contains(t, nt, "<"+doc+"#photo>")
		assert.Contains(t, nt, `"Photo"`)
	})

	t.Run("Fails when the document cannot be fetched", func(t *testing.T) {
		op := opAddObjectBlock(Deps{LinkedData: &fakeLinkedData{}})

		_, err := op(context.Background(), callWith(map[string]any{
			"url":   doc,
			"value": "https://example.org/media/photo.jpg",
		}))
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "fetch document"))
	})
}
