package wphttp

import (
	"context"
	"sync"

	"github.com/RebelCode/wp-http/message"
	"github.com/RebelCode/wp-http/transport"
)

// Options configures the default transport. See [transport.Options].
type Options = transport.Options

// HandlerStack is a handler that runs a request through a list of middleware before it reaches the
// base handler. The middleware are constructed on first use and the resulting chain is reused for the
// lifetime of the stack.
type HandlerStack struct {
	handler  Handler
	mws      []Middleware
	once     sync.Once
	resolved Handler
}

// NewHandlerStack creates a stack around handler. The first middleware is the outermost: it sees the
// request first and the response last.
func NewHandlerStack(handler Handler, mws ...Middleware) *HandlerStack {
	if handler == nil {
		panic("wphttp: handler stack requires a base handler")
	}

	return &HandlerStack{handler: handler, mws: mws}
}

// Handle implements [Handler].
func (s *HandlerStack) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	return s.resolve().Handle(ctx, req)
}

func (s *HandlerStack) resolve() Handler {
	s.once.Do(func() {
		s.resolved = Wrap(s.handler, s.mws...)
	})

	return s.resolved
}

type stackConfig struct {
	transport transport.Transport
	logs      Logger
	mws       []Middleware
}

// StackOption configures [NewDefaultHandlerStack].
type StackOption func(*stackConfig)

// WithTransport replaces the default net/http transport.
func WithTransport(t transport.Transport) StackOption {
	return func(c *stackConfig) { c.transport = t }
}

// WithLogger sets the logger used by the transport handler.
func WithLogger(logs Logger) StackOption {
	return func(c *stackConfig) { c.logs = logs }
}

// WithMiddlewares appends middleware after the default ones, closer to the transport.
func WithMiddlewares(mws ...Middleware) StackOption {
	return func(c *stackConfig) { c.mws = append(c.mws, mws...) }
}

// NewDefaultHandlerStack creates the standard stack: request bodies are prepared, then error responses
// are promoted to errors, then the request is sent by the transport configured with opts.
func NewDefaultHandlerStack(opts Options, sopts ...StackOption) *HandlerStack {
	cfg := stackConfig{logs: NewNopLogger()}
	for _, o := range sopts {
		o(&cfg)
	}
	if cfg.transport == nil {
		cfg.transport = transport.New()
	}

	mws := append([]Middleware{
		Factory(NewPrepareBody),
		Factory(NewHTTPErrors),
	}, cfg.mws...)

	return NewHandlerStack(NewTransportHandler(cfg.transport, opts, cfg.logs), mws...)
}
