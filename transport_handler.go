package wphttp

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/RebelCode/wp-http/message"
	"github.com/RebelCode/wp-http/transport"
	"github.com/cockroachdb/errors"
)

// TransportHandler is the innermost handler of a stack. It hands the request to a [transport.Transport]
// and converts the result into a response.
//
// When the transport streamed the body to a file, the response body is an open [message.FileBody].
// The caller must close it through io.Closer, including when the response only reaches it inside an
// [*Error] returned by [HTTPErrors].
type TransportHandler struct {
	transport transport.Transport
	opts      Options
	logs      Logger
}

// NewTransportHandler creates the handler. The options are passed to the transport unchanged with
// every call.
func NewTransportHandler(t transport.Transport, opts Options, logs Logger) *TransportHandler {
	if logs == nil {
		logs = NewNopLogger()
	}

	return &TransportHandler{transport: t, opts: opts, logs: logs}
}

// Handle implements [Handler].
func (h *TransportHandler) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	hdr := req.Headers()
	if err := message.ValidateHeaders(hdr); err != nil {
		return nil, errors.Wrap(err, "invalid request headers")
	}

	body, err := message.ReadAll(req.Body())
	if err != nil {
		return nil, errors.Wrap(err, "failed to read request body")
	}

	call := &transport.Call{
		URL:             req.URI().String(),
		Method:          req.Method(),
		ProtocolVersion: req.ProtocolVersion(),
		Header:          make(http.Header, len(hdr)),
		Body:            body,
		Options:         h.opts,
	}
	for _, name := range message.SortedKeys(hdr) {
		call.Header.Set(name, strings.Join(hdr[name], ", "))
	}

	h.logs.LogDispatch(req)
	res, err := h.transport.Perform(ctx, call)
	if err != nil {
		h.logs.LogTransportError(req, err)
		if herr, ok := AsError(err); ok {
			return nil, herr
		}
		return nil, NewNetworkError(req, err)
	}

	return h.response(req, res)
}

func (h *TransportHandler) response(req *message.Request, res *transport.Result) (*message.Response, error) {
	code, reason := res.StatusCode, res.Reason
	if code < 100 || code > 999 {
		code, reason = http.StatusBadRequest, ""
	}

	body := message.BytesBody(res.Body)
	if res.Filename != "" {
		f, err := os.Open(res.Filename)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open streamed body %q", res.Filename)
		}
		if body, err = message.FileBody(f); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return message.NewResponse(code, res.Header, body).
		WithStatus(code, reason).
		WithProtocolVersion(req.ProtocolVersion()), nil
}
