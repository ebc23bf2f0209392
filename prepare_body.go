package wphttp

import (
	"context"
	"strconv"

	"github.com/RebelCode/wp-http/message"
)

// PrepareBody fills in the Content-Type and Content-Length or Transfer-Encoding headers of requests
// that carry a body. Headers that are already present are left alone.
type PrepareBody struct{ Next }

// NewPrepareBody creates the middleware.
func NewPrepareBody(next Handler) *PrepareBody {
	return &PrepareBody{NewNext(next)}
}

// Handle implements [Handler].
func (m *PrepareBody) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	body := req.Body()
	size, known := body.Size()
	if known && size == 0 {
		return m.Delegate(ctx, req)
	}

	modified := req
	if !req.HasHeader("Content-Type") {
		if uri, ok := body.Metadata(message.MetadataURI); ok {
			if name, ok := uri.(string); ok {
				if typ := message.MimeTypeFromFilename(name); typ != "" {
					modified = modified.WithHeader("Content-Type", typ)
				}
			}
		}
	}

	if !req.HasHeader("Content-Length") && !req.HasHeader("Transfer-Encoding") {
		if known {
			modified = modified.WithHeader("Content-Length", strconv.FormatInt(size, 10))
		} else {
			modified = modified.WithHeader("Transfer-Encoding", "chunked")
		}
	}

	return m.Delegate(ctx, modified)
}
