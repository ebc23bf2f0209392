package message

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

// Request is an immutable outgoing HTTP request. Methods named With* return a modified copy and leave
// the receiver untouched.
type Request struct {
	fields
	method string
	uri    *url.URL
}

// NewRequest creates a request. A nil body is replaced by an empty one. The Host header is derived from
// the URI when it carries a host.
func NewRequest(method string, uri *url.URL, body Body) *Request {
	if uri == nil {
		uri = &url.URL{}
	}

	u := *uri
	r := &Request{
		fields: newFields(nil, body),
		method: method,
		uri:    &u,
	}
	r.updateHostFromURI()

	return r
}

// ParseRequest creates a request from a raw URI reference.
func ParseRequest(method, rawURI string, body Body) (*Request, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse request uri %q", rawURI)
	}

	return NewRequest(method, u, body), nil
}

// MustParseRequest is like [ParseRequest] but panics on an invalid URI.
func MustParseRequest(method, rawURI string, body Body) *Request {
	r, err := ParseRequest(method, rawURI, body)
	if err != nil {
		panic("message: " + err.Error())
	}
	return r
}

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// URI returns a copy of the request URI.
func (r *Request) URI() *url.URL {
	u := *r.uri
	return &u
}

func (r *Request) clone() *Request {
	c := *r
	c.fields = r.fields.clone()
	return &c
}

// WithMethod returns a copy with the method replaced.
func (r *Request) WithMethod(method string) *Request {
	c := r.clone()
	c.method = method
	return c
}

// WithURI returns a copy with the URI replaced. The Host header is updated from the new URI unless
// preserveHost is true and the request already carries a Host header.
func (r *Request) WithURI(uri *url.URL, preserveHost bool) *Request {
	c := r.clone()
	u := *uri
	c.uri = &u

	if !preserveHost || !c.HasHeader("Host") {
		c.updateHostFromURI()
	}

	return c
}

// WithHeader returns a copy with the named header replaced by values.
func (r *Request) WithHeader(name string, values ...string) *Request {
	c := r.clone()
	c.header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	return c
}

// WithAddedHeader returns a copy with values appended to the named header.
func (r *Request) WithAddedHeader(name string, values ...string) *Request {
	c := r.clone()
	k := http.CanonicalHeaderKey(name)
	c.header[k] = append(c.header[k], values...)
	return c
}

// WithoutHeader returns a copy without the named header.
func (r *Request) WithoutHeader(name string) *Request {
	c := r.clone()
	c.header.Del(name)
	return c
}

// WithBody returns a copy with the body replaced.
func (r *Request) WithBody(body Body) *Request {
	c := r.clone()
	if body == nil {
		body = EmptyBody()
	}
	c.body = body
	return c
}

// WithProtocolVersion returns a copy with the protocol version replaced.
func (r *Request) WithProtocolVersion(v string) *Request {
	c := r.clone()
	c.proto = v
	return c
}

// String renders the request line, e.g. "GET http://example.org/".
func (r *Request) String() string {
	return strings.TrimSpace(r.method + " " + r.uri.String())
}

// defaultPorts are dropped from the Host header.
var defaultPorts = map[string]string{"http": "80", "https": "443"}

func (r *Request) updateHostFromURI() {
	if r.uri.Host == "" {
		return
	}

	host := r.uri.Host
	if port := r.uri.Port(); port != "" && port == defaultPorts[strings.ToLower(r.uri.Scheme)] {
		host = strings.TrimSuffix(host, ":"+port)
	}
	r.header.Set("Host", host)
}
