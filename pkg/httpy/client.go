// Package httpy performs single GET requests and returns a normalized status,
// protocol version and JSON body.
package httpy

import (
	"sync"

	"github.com/samvad-hq/httpy/pkg/httpclient"
)

// Client issues one-shot GET requests and normalizes the responses. A Client
// keeps no per-request state.
type Client struct {
	transport httpclient.Transport
	log       Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport swaps the transport used to reach the network.
func WithTransport(t httpclient.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger attaches a logger. Clients are silent by default.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient builds a Client. Without WithTransport it uses a resty transport
// with no timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = httpclient.NewRestyTransport(httpclient.Options{})
	}
	c.log = ensureLogger(c.log)
	return c
}

var defaultClient = sync.OnceValue(func() *Client { return NewClient() })
