package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

var _ Client = (*HTTPClient)(nil)

// HTTPClient is the default Client, built on net/http.
type HTTPClient struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the request timeout. The default is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client entirely.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *HTTPClient) {
		c.log = log
	}
}

// New creates an HTTPClient.
func New(options ...Option) *HTTPClient {
	client := &HTTPClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Get issues a GET and returns the response body.
func (c *HTTPClient) Get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.Get] http.NewRequestWithContext")
	}
	return c.do(req)
}

// PostForm issues a POST with a form-encoded body.
func (c *HTTPClient) PostForm(ctx context.Context, requestURL string, fields url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.PostForm] http.NewRequestWithContext")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// PostBytes issues a POST with the given bytes as the body.
func (c *HTTPClient) PostBytes(ctx context.Context, requestURL string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.PostBytes] http.NewRequestWithContext")
	}
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.do] httpClient.Do")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPClient.do] io.ReadAll")
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("payvment api request")

	if resp.StatusCode >= http.StatusBadRequest {
		return body, errors.Errorf("[HTTPClient.do] unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
