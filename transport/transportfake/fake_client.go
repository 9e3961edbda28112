// Package transportfake provides a scripted transport.Client for tests.
package transportfake

import (
	"context"
	"net/url"
	"sync"

	"github.com/jrsteele09/go-payvment/transport"
	"github.com/pkg/errors"
)

var _ transport.Client = (*FakeClient)(nil)

// Call records one request dispatched through the fake.
type Call struct {
	Method string
	URL    string
	Fields url.Values
	Body   []byte
}

// FakeClient is a scripted transport.Client. Set the response functions to
// script behaviour; unscripted methods fail. Every dispatched request is
// recorded in Calls.
type FakeClient struct {
	GetFunc       func(url string) ([]byte, error)
	PostFormFunc  func(url string, fields url.Values) ([]byte, error)
	PostBytesFunc func(url string, body []byte) ([]byte, error)

	mu    sync.Mutex
	Calls []Call
}

// New creates an unscripted FakeClient.
func New() *FakeClient {
	return &FakeClient{}
}

func (c *FakeClient) record(call Call) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, call)
}

// LastCall returns the most recent recorded call.
func (c *FakeClient) LastCall() (Call, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Calls) == 0 {
		return Call{}, false
	}
	return c.Calls[len(c.Calls)-1], true
}

func (c *FakeClient) Get(_ context.Context, requestURL string) ([]byte, error) {
	c.record(Call{Method: "GET", URL: requestURL})
	if c.GetFunc == nil {
		return nil, errors.New("FakeClient.Get not scripted")
	}
	return c.GetFunc(requestURL)
}

func (c *FakeClient) PostForm(_ context.Context, requestURL string, fields url.Values) ([]byte, error) {
	c.record(Call{Method: "POST", URL: requestURL, Fields: fields})
	if c.PostFormFunc == nil {
		return nil, errors.New("FakeClient.PostForm not scripted")
	}
	return c.PostFormFunc(requestURL, fields)
}

func (c *FakeClient) PostBytes(_ context.Context, requestURL string, body []byte) ([]byte, error) {
	c.record(Call{Method: "POST", URL: requestURL, Body: body})
	if c.PostBytesFunc == nil {
		return nil, errors.New("FakeClient.PostBytes not scripted")
	}
	return c.PostBytesFunc(requestURL, body)
}
