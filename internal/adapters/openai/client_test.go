package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer answers every completion request with the given content.
func chatServer(t *testing.T, content string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestSPARQL(t *testing.T) {
	var req chatRequest
	srv := chatServer(t, "```sparql\nSELECT * WHERE { ?s ?p ?o }\n```", &req)
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL), WithModel("test-model"))
	query, err := c.SPARQL(context.Background(), "list everything")
	require.NoError(t, err)

	// The code fence the model added despite the prompt is stripped.
	assert.Equal(t, "SELECT * WHERE { ?s ?p ?o }", query)
	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[1].Content, "list everything")
}

func TestWorkflow(t *testing.T) {
	t.Run("Parses the returned document", func(t *testing.T) {
		srv := chatServer(t, `{"@op": "GET", "args": {"url": "https://example.org/"}}`, nil)
		defer srv.Close()

		c := New("test-key", WithBaseURL(srv.URL))
		doc, err := c.Workflow(context.Background(), "fetch the homepage")
		require.NoError(t, err)

		m, ok := doc.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "GET", m["@op"])
	})

	t.Run("Rejects non-JSON output", func(t *testing.T) {
		srv := chatServer(t, "sorry, I cannot do that", nil)
		defer srv.Close()

		c := New("test-key", WithBaseURL(srv.URL))
		_, err := c.Workflow(context.Background(), "fetch the homepage")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})
}

func TestMissingAPIKey(t *testing.T) {
	_, err := New("").SPARQL(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key")
}

func TestStripFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "SELECT * WHERE {}", "SELECT * WHERE {}"},
		{"plain fence", "```\nSELECT\n```", "SELECT"},
		{"language fence", "```json\n{}\n```", "{}"},
		{"surrounding whitespace", "  ```\nx\n```  ", "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFence(tc.in))
		})
	}
}
