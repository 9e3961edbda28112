// Package transport provides the HTTP fetch capability the SDK dispatches
// requests through. The Client interface is the seam: tests substitute a
// scripted fake, applications can wrap their own http.Client for pooling,
// proxies, or instrumentation.
package transport

import (
	"context"
	"net/url"
)

// Client is the outbound HTTP capability.
// A hung call blocks the calling goroutine for as long as the underlying
// transport allows; configure a timeout on the implementation.
type Client interface {
	// Get issues a GET and returns the raw response body.
	Get(ctx context.Context, url string) ([]byte, error)

	// PostForm issues a POST with a form-encoded body and returns the raw
	// response body.
	PostForm(ctx context.Context, url string, fields url.Values) ([]byte, error)

	// PostBytes issues a POST with the given bytes as the body and returns
	// the raw response body.
	PostBytes(ctx context.Context, url string, body []byte) ([]byte, error)
}
