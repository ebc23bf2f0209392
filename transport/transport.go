package transport

import (
	"context"
	"net/http"
)

// Call holds everything the transport needs to perform one remote request.
type Call struct {
	URL             string
	Method          string
	ProtocolVersion string
	Header          http.Header
	Body            []byte
	Options         Options
}

// Result is the raw outcome of a call. Filename is set when the body was streamed to disk, in which
// case Body is empty. The file is not removed by the transport.
type Result struct {
	StatusCode int
	Reason     string
	Header     http.Header
	Body       []byte
	Filename   string
}

// Transport performs remote requests. An error means no response was obtained, typically because a
// connection could not be established.
type Transport interface {
	Perform(ctx context.Context, call *Call) (*Result, error)
}

// Func allows a function to implement [Transport].
type Func func(ctx context.Context, call *Call) (*Result, error)

// Perform implements [Transport].
func (f Func) Perform(ctx context.Context, call *Call) (*Result, error) {
	return f(ctx, call)
}
