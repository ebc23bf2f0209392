// Package wphttptest provides helpers for testing code that uses wphttp.
package wphttptest

import (
	"context"
	"net/http"
	"sync"

	"github.com/RebelCode/wp-http/transport"
	"github.com/cockroachdb/errors"
)

// ErrNoReply is returned by a [Recorder] that has run out of replies.
var ErrNoReply = errors.New("wphttptest: no reply queued")

// Recorder is a [transport.Transport] that records every call and answers with queued replies. When
// only one reply is left it is reused for all further calls.
type Recorder struct {
	mu      sync.Mutex
	calls   []*transport.Call
	replies []transport.Func
}

// NewRecorder creates a recorder that answers with replies in order.
func NewRecorder(replies ...transport.Func) *Recorder {
	return &Recorder{replies: replies}
}

// Perform implements [transport.Transport].
func (r *Recorder) Perform(ctx context.Context, call *transport.Call) (*transport.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	if len(r.replies) == 0 {
		r.mu.Unlock()
		return nil, ErrNoReply
	}
	reply := r.replies[0]
	if len(r.replies) > 1 {
		r.replies = r.replies[1:]
	}
	r.mu.Unlock()

	return reply(ctx, call)
}

// Calls returns the recorded calls.
func (r *Recorder) Calls() []*transport.Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*transport.Call(nil), r.calls...)
}

// LastCall returns the most recent call, or nil.
func (r *Recorder) LastCall() *transport.Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

// Reply answers with a fixed status and body. Header pairs are given as name, value, name, value.
func Reply(code int, body string, header ...string) transport.Func {
	return func(context.Context, *transport.Call) (*transport.Result, error) {
		h := http.Header{}
		for i := 0; i+1 < len(header); i += 2 {
			h.Add(header[i], header[i+1])
		}

		return &transport.Result{
			StatusCode: code,
			Reason:     http.StatusText(code),
			Header:     h,
			Body:       []byte(body),
		}, nil
	}
}

// Fail answers with err, as if no connection could be made.
func Fail(err error) transport.Func {
	return func(context.Context, *transport.Call) (*transport.Result, error) {
		return nil, err
	}
}
