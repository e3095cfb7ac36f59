// Package sparqlhttp implements the SPARQL Protocol client: queries and
// updates are POSTed form-encoded, solutions come back in the SPARQL
// results JSON format, graphs in Turtle.
package sparqlhttp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/knakk/rdf"
	"github.com/knakk/sparql"

	"github.com/atomgraph/webalgebra/internal/logging"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

// Client runs queries against SPARQL Protocol endpoints.
type Client struct {
	http *http.Client
	log  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a SPARQL client.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: 60 * time.Second},
		log:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select runs a SELECT query and returns the solution table.
func (c *Client) Select(ctx context.Context, endpoint, query string) (*rdfio.Result, error) {
	body, err := c.query(ctx, endpoint, query, "application/sparql-results+json")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	res, err := sparql.ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return rdfio.FromSPARQL(res), nil
}

// Construct runs a CONSTRUCT query and returns the produced graph.
func (c *Client) Construct(ctx context.Context, endpoint, query string) (*rdfio.Graph, error) {
	return c.graphQuery(ctx, endpoint, query)
}

// Describe runs a DESCRIBE query and returns the produced graph.
func (c *Client) Describe(ctx context.Context, endpoint, query string) (*rdfio.Graph, error) {
	return c.graphQuery(ctx, endpoint, query)
}

func (c *Client) graphQuery(ctx context.Context, endpoint, query string) (*rdfio.Graph, error) {
	body, err := c.query(ctx, endpoint, query, "text/turtle")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return rdfio.DecodeGraph(body, rdf.Turtle)
}

func (c *Client) query(ctx context.Context, endpoint, query, accept string) (io.ReadCloser, error) {
	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", accept)

	c.log.Debug("querying endpoint", "endpoint", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, fmt.Errorf("query %s: unexpected status %s", endpoint, resp.Status)
	}
	return resp.Body, nil
}

// Update posts a SPARQL update to the endpoint's update service.
func (c *Client) Update(ctx context.Context, endpoint, update string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(update))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/sparql-update")

	c.log.Debug("updating endpoint", "endpoint", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("update %s: unexpected status %s", endpoint, resp.Status)
	}
	return nil
}
