package wphttp

import (
	"context"

	"github.com/RebelCode/wp-http/message"
)

// Handler turns a request into a response. Implementations either produce the response themselves (the
// transport handler) or delegate to another handler (middleware). The context only carries cancellation
// and deadlines down to the transport.
type Handler interface {
	Handle(ctx context.Context, req *message.Request) (*message.Response, error)
}

// HandlerFunc allow casting a function to implement [Handler].
type HandlerFunc func(ctx context.Context, req *message.Request) (*message.Response, error)

// Handle implements the [Handler] interface.
func (f HandlerFunc) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	return f(ctx, req)
}
