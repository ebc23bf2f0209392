package wphttp

import (
	"context"

	"github.com/RebelCode/wp-http/message"
)

// HTTPErrors turns responses with a status code of 400 or above into errors. The resulting [*Error]
// still carries the response.
type HTTPErrors struct{ Next }

// NewHTTPErrors creates the middleware.
func NewHTTPErrors(next Handler) *HTTPErrors {
	return &HTTPErrors{NewNext(next)}
}

// Handle implements [Handler].
func (m *HTTPErrors) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	resp, err := m.Delegate(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() < 400 {
		return resp, nil
	}

	return nil, NewBadResponseError(req, resp, nil)
}
