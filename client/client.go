// Package client is the typed HTTP client for the CineFeed backend. All
// calls flow through a single wrapper that injects the bearer credential
// on the way out and runs session-expiry detection on the way back, so
// every API surface in this package is subject to the same session
// policy without opting in.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yjkwon/cinefeed/credstore"
	"github.com/yjkwon/cinefeed/session"
)

// Request describes one outbound call. It is ephemeral: built by a
// caller, consumed by Do.
type Request struct {
	Method string
	// Path is the endpoint path as configured on the call, e.g.
	// "/contents/search". Expiry exemption matches against this path,
	// never against the resolved absolute URL.
	Path   string
	Query  url.Values
	Header http.Header
	// Body is JSON-encoded when non-nil. Raw takes precedence over Body
	// and is sent as-is with ContentType (uploads).
	Body        any
	Raw         io.Reader
	ContentType string
}

// Response is the outcome of a completed call.
type Response struct {
	Status int
	Body   []byte
	// Path echoes the request path the response belongs to.
	Path string
}

// Client wraps an *http.Client with a fixed base address, bearer
// injection, and response-side expiry detection. The zero value is not
// usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	store   credstore.Store
	bus     *session.Bus
	exempt  []string
	log     zerolog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying transport client. Timeouts and
// cancellation are deliberately left to the transport's defaults.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithStore sets the credential store consulted for the bearer token.
func WithStore(store credstore.Store) Option {
	return func(c *Client) { c.store = store }
}

// WithBus sets the bus expiry events are published on.
func WithBus(bus *session.Bus) Option {
	return func(c *Client) { c.bus = bus }
}

// WithLogger sets the structured logger. If not set, logging is disabled.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithExemptPrefixes overrides the path prefixes excluded from expiry
// classification. Mostly useful in tests.
func WithExemptPrefixes(prefixes []string) Option {
	return func(c *Client) { c.exempt = prefixes }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		store:   credstore.NewMemory(),
		bus:     session.NewBus(),
		exempt:  ExemptPrefixes,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the credential store the client reads its token from.
func (c *Client) Store() credstore.Store { return c.store }

// Bus returns the bus expiry events are published on.
func (c *Client) Bus() *session.Bus { return c.bus }

// Do sends the request and runs the response through expiry detection
// before returning. The caller always observes the unmodified transport
// result: detection is observation-only and never swallows an error.
// A non-2xx status is returned as a *APIError alongside the response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		// Transport failure: no status code, never classified as expiry.
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", req.Method, req.Path, err)
	}

	resp := &Response{Status: httpResp.StatusCode, Body: body, Path: req.Path}
	if resp.Status >= 400 {
		c.observe(req.Path, resp.Status)
		return resp, newAPIError(req.Method, req.Path, resp.Status, body)
	}
	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Raw != nil:
		body = req.Raw
		contentType = req.ContentType
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encoding body: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Attach the bearer token when present; public endpoints are sent
	// unmodified.
	if token, ok := c.store.Token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

// getJSON issues a GET and decodes the response body into out when out
// is non-nil.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: in})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: in})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
	return err
}

func decodeJSON(resp *Response, out any) error {
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", resp.Path, err)
	}
	return nil
}
