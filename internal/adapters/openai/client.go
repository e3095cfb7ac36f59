// Package openai implements the language model translator against the
// OpenAI chat completions API (or any compatible endpoint).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/atomgraph/webalgebra/internal/logging"
)

const defaultBaseURL = "https://api.openai.com/v1"

const sparqlSystemPrompt = "You are an expert in RDF and SPARQL. " +
	"Generate a valid SPARQL query based on the given natural language question."

const workflowSystemPrompt = "You are an expert in Linked Data workflows. " +
	"Translate the instruction into a single JSON workflow document. " +
	"Every operation is a JSON object of the form {\"@op\": name, \"args\": {...}}; " +
	"a JSON array runs its elements in order. " +
	"Respond with the JSON document only, no explanations and no markdown formatting."

// Client talks to a chat completions endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a compatible endpoint, e.g. a test
// server or a local inference gateway.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a translator client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		model:   "gpt-4o",
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SPARQL translates a natural-language question into a SPARQL query.
func (c *Client) SPARQL(ctx context.Context, instruction string) (string, error) {
	user := "Convert this into a SPARQL query:\nQuestion: " + instruction +
		"\nRemember to include the necessary PREFIX declarations. " +
		"Provide only the query string, no explanations or comments or markdown formatting."
	out, err := c.complete(ctx, sparqlSystemPrompt, user)
	if err != nil {
		return "", err
	}
	return stripFence(out), nil
}

// Workflow translates an instruction into a workflow document.
func (c *Client) Workflow(ctx context.Context, instruction string) (any, error) {
	out, err := c.complete(ctx, workflowSystemPrompt, instruction)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal([]byte(stripFence(out)), &doc); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	return doc, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("requesting completion", "model", c.model)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion failed: %s: %s", resp.Status, string(msg))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return out.Choices[0].Message.Content, nil
}

// stripFence removes a markdown code fence if the model wrapped its
// answer in one despite the prompt.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
