package wphttp

import (
	"context"

	"github.com/RebelCode/wp-http/message"
)

// Middleware constructs a handler that wraps next. It is called at most once per [HandlerStack], when
// the stack is first used.
type Middleware func(next Handler) Handler

// Next holds the handler a middleware delegates to. Embed it in a middleware struct and initialize it
// with [NewNext] from the middleware's constructor. It cannot be changed afterwards.
type Next struct{ next Handler }

// NewNext returns a Next that delegates to h.
func NewNext(h Handler) Next {
	return Next{next: h}
}

// Delegate passes the request to the next handler. It panics when the middleware was built without
// going through [NewNext].
func (n Next) Delegate(ctx context.Context, req *message.Request) (*message.Response, error) {
	if n.next == nil {
		panic("wphttp: middleware has no next handler, construct it with NewNext")
	}

	return n.next.Handle(ctx, req)
}

// Factory adapts a middleware constructor into a [Middleware]. The constructor receives the next
// handler as its only argument.
func Factory[H Handler](ctor func(next Handler) H) Middleware {
	return func(next Handler) Handler {
		return ctor(next)
	}
}

// FactoryWith adapts a middleware constructor that takes one construction argument besides the next
// handler. The argument is captured now and passed on each construction.
func FactoryWith[H Handler, A any](ctor func(next Handler, arg A) H, arg A) Middleware {
	return func(next Handler) Handler {
		return ctor(next, arg)
	}
}

// Wrap takes the inner handler h and wraps it with middleware. The order is that of the Gorilla and Chi
// router. That is: the middleware provided first is called first and is the "outer" most wrapping, the
// middleware provided last will be the "inner most" wrapping (closest to the handler). Nil middleware is
// skipped.
func Wrap(h Handler, m ...Middleware) Handler {
	wrapped := h
	for i := len(m) - 1; i >= 0; i-- {
		if m[i] == nil {
			continue
		}
		wrapped = m[i](wrapped)
	}

	return wrapped
}
