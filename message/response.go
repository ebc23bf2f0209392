package message

import (
	"net/http"
)

// Response is an immutable HTTP response. Methods named With* return a modified copy.
type Response struct {
	fields
	status int
	reason string
}

// NewResponse creates a response. The reason phrase defaults to the standard text for the status code.
func NewResponse(status int, header http.Header, body Body) *Response {
	return &Response{
		fields: newFields(header, body),
		status: status,
		reason: http.StatusText(status),
	}
}

// StatusCode returns the numeric status code.
func (r *Response) StatusCode() int { return r.status }

// ReasonPhrase returns the reason phrase.
func (r *Response) ReasonPhrase() string { return r.reason }

func (r *Response) clone() *Response {
	c := *r
	c.fields = r.fields.clone()
	return &c
}

// WithStatus returns a copy with the status code and reason replaced. An empty reason falls back to the
// standard text.
func (r *Response) WithStatus(code int, reason string) *Response {
	c := r.clone()
	c.status = code
	if reason == "" {
		reason = http.StatusText(code)
	}
	c.reason = reason
	return c
}

// WithHeader returns a copy with the named header replaced by values.
func (r *Response) WithHeader(name string, values ...string) *Response {
	c := r.clone()
	c.header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	return c
}

// WithAddedHeader returns a copy with values appended to the named header.
func (r *Response) WithAddedHeader(name string, values ...string) *Response {
	c := r.clone()
	k := http.CanonicalHeaderKey(name)
	c.header[k] = append(c.header[k], values...)
	return c
}

// WithBody returns a copy with the body replaced.
func (r *Response) WithBody(body Body) *Response {
	c := r.clone()
	if body == nil {
		body = EmptyBody()
	}
	c.body = body
	return c
}

// WithProtocolVersion returns a copy with the protocol version replaced.
func (r *Response) WithProtocolVersion(v string) *Response {
	c := r.clone()
	c.proto = v
	return c
}
