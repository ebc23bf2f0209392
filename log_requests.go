package wphttp

import (
	"context"
	"time"

	"github.com/RebelCode/wp-http/message"
)

// LogRequests reports every round trip that passes through it, with its duration and outcome.
type LogRequests struct {
	Next
	logs Logger
}

// NewLogRequests creates the middleware.
func NewLogRequests(next Handler, logs Logger) *LogRequests {
	return &LogRequests{Next: NewNext(next), logs: logs}
}

// LogRequestsMiddleware returns a [Middleware] that builds [LogRequests] with logs.
func LogRequestsMiddleware(logs Logger) Middleware {
	return FactoryWith(NewLogRequests, logs)
}

// Handle implements [Handler].
func (m *LogRequests) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	start := time.Now()
	resp, err := m.Delegate(ctx, req)
	m.logs.LogRoundTrip(req, resp, err, time.Since(start))

	return resp, err
}
