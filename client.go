package wphttp

import (
	"context"
	"net/url"

	"github.com/RebelCode/wp-http/message"
)

// Client sends requests through a handler, resolving relative request URIs against an optional base
// URI first.
type Client struct {
	handler Handler
	baseURI *url.URL
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithBaseURI makes the client resolve request URIs against base.
func WithBaseURI(base *url.URL) ClientOption {
	return func(c *Client) { c.baseURI = base }
}

// NewClient creates a client that sends requests through handler.
func NewClient(handler Handler, opts ...ClientOption) *Client {
	c := &Client{handler: handler}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewDefaultClient creates a client over [NewDefaultHandlerStack]. A nil base URI disables resolution.
func NewDefaultClient(base *url.URL, opts Options, sopts ...StackOption) *Client {
	return NewClient(NewDefaultHandlerStack(opts, sopts...), WithBaseURI(base))
}

// BaseURI returns the base URI, or nil when none is configured.
func (c *Client) BaseURI() *url.URL {
	if c.baseURI == nil {
		return nil
	}
	u := *c.baseURI
	return &u
}

// SendRequest sends req and returns the response. Status codes are not interpreted here: whether an
// error response becomes an error depends on the handler.
func (c *Client) SendRequest(ctx context.Context, req *message.Request) (*message.Response, error) {
	if c.baseURI != nil {
		resolved := c.baseURI.ResolveReference(req.URI())
		req = req.WithURI(resolved, req.HasHeader("Host"))
	}

	return c.handler.Handle(ctx, req)
}

// Handle implements [Handler] so a client can be used as the base of another stack.
func (c *Client) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	return c.SendRequest(ctx, req)
}
