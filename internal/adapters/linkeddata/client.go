// Package linkeddata implements the Linked Data HTTP client: content
// negotiation over the RDF media types on reads, N-Triples on writes.
package linkeddata

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/knakk/rdf"

	"github.com/atomgraph/webalgebra/internal/logging"
	"github.com/atomgraph/webalgebra/pkg/ports"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

const userAgent = "webalgebra/1.0 (Linked Data processing; https://github.com/atomgraph/webalgebra)"

var acceptHeader = strings.Join([]string{
	"application/n-triples",
	"text/turtle",
	"application/ld+json",
	"application/rdf+xml",
}, ", ")

// Client talks to Linked Data servers. The zero options give a plain
// client with a 30s timeout; TLS client certificates are supplied via
// WithTLSConfig for servers that require WebID-TLS style authentication.
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

// WithTLSConfig sets the TLS configuration, e.g. a client certificate.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{TLSClientConfig: cfg}
	}
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Linked Data client.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: 30 * time.Second},
		log:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get dereferences a resource URI and parses the response body according
// to its Content-Type.
func (c *Client) Get(ctx context.Context, uri string) (*rdfio.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, statusError(http.MethodGet, uri, resp)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("GET %s: parse Content-Type: %w", uri, err)
	}
	c.log.Debug("dereferenced resource", "url", uri, "status", resp.StatusCode, "type", mediaType)

	switch mediaType {
	case "application/n-triples":
		return rdfio.DecodeGraph(resp.Body, rdf.NTriples)
	case "text/turtle":
		return rdfio.DecodeGraph(resp.Body, rdf.Turtle)
	case "application/rdf+xml":
		return rdfio.DecodeGraph(resp.Body, rdf.RDFXML)
	case "application/ld+json":
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return rdfio.ParseJSONLDBytes(data)
	default:
		return nil, fmt.Errorf("GET %s: unsupported Content-Type %q", uri, mediaType)
	}
}

// Post appends a graph to a container resource, serialized as N-Triples.
func (c *Client) Post(ctx context.Context, uri string, g *rdfio.Graph) (ports.Status, error) {
	return c.write(ctx, http.MethodPost, uri, "application/n-triples", g.NTriples())
}

// Put replaces the resource state with a graph, serialized as N-Triples.
func (c *Client) Put(ctx context.Context, uri string, g *rdfio.Graph) (ports.Status, error) {
	return c.write(ctx, http.MethodPut, uri, "application/n-triples", g.NTriples())
}

// Patch applies a SPARQL update to the resource state.
func (c *Client) Patch(ctx context.Context, uri string, update string) (ports.Status, error) {
	return c.write(ctx, http.MethodPatch, uri, "application/sparql-update", update)
}

// Delete removes the resource.
func (c *Client) Delete(ctx context.Context, uri string) (ports.Status, error) {
	return c.write(ctx, http.MethodDelete, uri, "", "")
}

func (c *Client) write(ctx context.Context, method, uri, contentType, body string) (ports.Status, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return ports.Status{}, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.Status{}, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return ports.Status{}, statusError(method, uri, resp)
	}
	c.log.Debug("wrote resource", "method", method, "url", uri, "status", resp.StatusCode)

	effective := uri
	if loc := resp.Header.Get("Location"); loc != "" {
		effective = loc
	}
	return ports.Status{Code: resp.StatusCode, URL: effective}, nil
}

func statusError(method, uri string, resp *http.Response) error {
	return fmt.Errorf("%s %s: unexpected status %s", method, uri, resp.Status)
}
