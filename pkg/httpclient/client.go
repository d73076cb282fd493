// Package httpclient provides the base HTTP/JSON client for the installd
// management service. It issues typed requests against a configured base URL
// and maps every failure into the switchboard error taxonomy: a
// TransportError when no response was obtained, a ProtocolError for non-2xx
// responses, and a DecodeError when a 2xx body does not match the expected
// shape. The client performs no retries and holds no per-call state, so a
// single instance is safe for unrestricted concurrent use.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/installd/switchboard/pkg/constants"
	"github.com/installd/switchboard/pkg/errors"
	"github.com/installd/switchboard/pkg/logging"
)

// Client issues HTTP requests against the management service base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the built-in HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: constants.DefaultHTTPTimeout},
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path and decodes the JSON response body into a value of type T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var value T
	if err := c.GetJSON(ctx, path, &value); err != nil {
		return value, err
	}
	return value, nil
}

// GetJSON fetches path and decodes the JSON response body into target.
func (c *Client) GetJSON(ctx context.Context, path string, target any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.decode(resp, path, target)
}

// Post issues a POST to path with body serialized as JSON, expecting a
// discardable success body. A nil body sends an empty JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.discard(resp, path)
}

// Put issues a PUT to path with body serialized as JSON, expecting a
// discardable success body. A nil body sends an empty JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) error {
	resp, err := c.do(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return c.discard(resp, path)
}

// do performs a single HTTP exchange. It returns the raw response, or a
// TransportError if no response was obtained.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "request body", err)
		}
		reader = bytes.NewReader(payload)
	} else if method != http.MethodGet {
		// Writes always carry a body; actions send an empty JSON object.
		reader = strings.NewReader("{}")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}

	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("method", method).
			Str("url", url).
			Err(err).
			Msg("Request failed before a response was obtained")
		return nil, errors.NewTransportError(method, url, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Msg("Request completed")

	return resp, nil
}

// decode consumes the response body and unmarshals it into target,
// translating failure statuses and malformed bodies into typed errors.
func (c *Client) decode(resp *http.Response, path string, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if !success(resp.StatusCode) {
		return errors.NewProtocolError(resp.StatusCode, path, snippet(body))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewDecodeError(path, snippet(body), err)
	}

	return nil
}

// discard drains the response body of a void write, surfacing a
// ProtocolError on failure statuses.
func (c *Client) discard(resp *http.Response, path string) error {
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return errors.NewProtocolError(resp.StatusCode, path, snippet(body))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// success reports whether status is a 2xx status.
func success(status int) bool {
	return status >= 200 && status < 300
}

// snippet bounds a response body for inclusion in error values.
func snippet(body []byte) string {
	if len(body) > constants.MaxBodySnippet {
		body = body[:constants.MaxBodySnippet]
	}
	return string(body)
}
