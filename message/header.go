package message

import (
	"net/http"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"golang.org/x/net/http/httpguts"
)

// fields holds what requests and responses have in common.
type fields struct {
	proto  string
	header http.Header
	body   Body
}

func newFields(header http.Header, body Body) fields {
	if body == nil {
		body = EmptyBody()
	}

	return fields{proto: "1.1", header: canonical(header), body: body}
}

// canonical copies h with every key in canonical form, merging keys that differ only in case.
func canonical(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for _, k := range SortedKeys(h) {
		ck := http.CanonicalHeaderKey(k)
		out[ck] = append(out[ck], h[k]...)
	}
	return out
}

func (f fields) clone() fields {
	f.header = f.header.Clone()
	if f.header == nil {
		f.header = http.Header{}
	}
	return f
}

// ProtocolVersion returns the HTTP protocol version, e.g. "1.1".
func (f fields) ProtocolVersion() string { return f.proto }

// Headers returns a copy of all headers.
func (f fields) Headers() http.Header { return f.header.Clone() }

// Header returns the values of the named header. The name is case-insensitive.
func (f fields) Header(name string) []string {
	return slices.Clone(f.header.Values(name))
}

// HeaderLine returns the values of the named header joined by a comma.
func (f fields) HeaderLine(name string) string {
	return strings.Join(f.header.Values(name), ", ")
}

// HasHeader reports whether the named header is present. The name is case-insensitive.
func (f fields) HasHeader(name string) bool {
	_, ok := f.header[http.CanonicalHeaderKey(name)]
	return ok
}

// Body returns the message body. It is never nil.
func (f fields) Body() Body { return f.body }

// SortedKeys returns the header names in h in lexical order.
func SortedKeys(h http.Header) []string {
	keys := lo.Keys(h)
	slices.Sort(keys)
	return keys
}

// ValidateHeaders checks every header name and value against the HTTP field grammar.
func ValidateHeaders(h http.Header) error {
	for _, name := range SortedKeys(h) {
		if !httpguts.ValidHeaderFieldName(name) {
			return errors.Errorf("invalid header field name %q", name)
		}

		for _, v := range h[name] {
			if !httpguts.ValidHeaderFieldValue(v) {
				return errors.Errorf("invalid header field value for %q", name)
			}
		}
	}

	return nil
}
