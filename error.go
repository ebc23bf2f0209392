package wphttp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/RebelCode/wp-http/message"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// Kind classifies an [*Error].
type Kind int

const (
	KindUnknown     Kind = iota
	KindNetwork          // the request could not be completed
	KindBadResponse      // status >= 400 outside the 4xx and 5xx ranges
	KindClient           // status in [400, 500)
	KindServer           // status in [500, 600)
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindBadResponse:
		return "bad response"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Sentinels for matching errors by family with errors.Is. Every [*Error] is both an ErrHTTP and an
// ErrRequest, errors that carry a response are ErrResponse, and client and server errors are also
// ErrBadResponse.
var (
	ErrHTTP        = errors.New("wphttp: http error")
	ErrRequest     = errors.New("wphttp: request error")
	ErrResponse    = errors.New("wphttp: response error")
	ErrBadResponse = errors.New("wphttp: bad response")
	ErrClient      = errors.New("wphttp: client error")
	ErrServer      = errors.New("wphttp: server error")
	ErrNetwork     = errors.New("wphttp: network error")
)

// Error describes a failed request. It always carries the request, and the response when one was
// received.
type Error struct {
	kind  Kind
	code  int
	msg   string
	req   *message.Request
	resp  *message.Response
	cause error
}

// NewBadResponseError classifies a response by its status code and builds an error with a message that
// is safe to log: credentials in the request URL are masked. The cause is optional.
func NewBadResponseError(req *message.Request, resp *message.Response, cause error) *Error {
	msg := fmt.Sprintf("`%s %s` resulted in a `%d %s` response",
		req.Method(), RedactURL(req.URI()), resp.StatusCode(), resp.ReasonPhrase())
	if summary, ok := message.BodySummary(resp.Body(), message.DefaultSummaryLimit); ok {
		msg += ":\n" + summary + "\n"
	}

	kind, prefix := KindBadResponse, "Unsuccessful request: "
	switch resp.StatusCode() / 100 {
	case 4:
		kind, prefix = KindClient, "Client error: "
	case 5:
		kind, prefix = KindServer, "Server error: "
	}

	return &Error{
		kind:  kind,
		code:  resp.StatusCode(),
		msg:   prefix + msg,
		req:   req,
		resp:  resp,
		cause: cause,
	}
}

// NewNetworkError builds an error for a request that produced no response.
func NewNetworkError(req *message.Request, cause error) *Error {
	msg := fmt.Sprintf("Network error: `%s %s` could not be completed", req.Method(), RedactURL(req.URI()))
	if cause != nil {
		msg += ": " + cause.Error()
	}

	return &Error{kind: KindNetwork, msg: msg, req: req, cause: cause}
}

func (e *Error) Error() string { return e.msg }

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Kind returns the classification.
func (e *Error) Kind() Kind { return e.kind }

// Code returns the response status code, or 0 for network errors.
func (e *Error) Code() int { return e.code }

// Request returns the request that failed.
func (e *Error) Request() *message.Request { return e.req }

// Response returns the response, or nil for network errors.
func (e *Error) Response() *message.Response { return e.resp }

// Is reports whether the error belongs to the family of target.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrHTTP, ErrRequest:
		return true
	case ErrResponse:
		return e.resp != nil
	case ErrBadResponse:
		return e.kind == KindBadResponse || e.kind == KindClient || e.kind == KindServer
	case ErrClient:
		return e.kind == KindClient
	case ErrServer:
		return e.kind == KindServer
	case ErrNetwork:
		return e.kind == KindNetwork
	}
	return false
}

// BodyField extracts a value from a JSON response body using a gjson path such as "error.message". It
// reports false when there is no response, the body cannot be read or the path does not exist.
func (e *Error) BodyField(path string) (string, bool) {
	if e.resp == nil {
		return "", false
	}

	data, err := message.ReadAll(e.resp.Body())
	if err != nil || !gjson.ValidBytes(data) {
		return "", false
	}

	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return "", false
	}
	return res.String(), true
}

// AsError returns the [*Error] in err's chain.
func AsError(err error) (*Error, bool) {
	var herr *Error
	ok := errors.As(err, &herr)
	return herr, ok
}

// KindOf returns the kind of the [*Error] in err's chain and [KindUnknown] otherwise.
func KindOf(err error) Kind {
	if herr, ok := AsError(err); ok {
		return herr.Kind()
	}
	return KindUnknown
}

// CodeOf returns the status code of the [*Error] in err's chain and 0 otherwise.
func CodeOf(err error) int {
	if herr, ok := AsError(err); ok {
		return herr.Code()
	}
	return 0
}

// RedactURL renders u with the password of its user info replaced by "***". URLs with only a user
// name are rendered unchanged.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	if _, ok := u.User.Password(); !ok {
		return u.String()
	}

	return strings.Replace(u.Redacted(), ":xxxxx@", ":***@", 1)
}
