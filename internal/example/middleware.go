// Package example implements example middleware in an outside package.
package example

import (
	"context"
	"encoding/base64"

	wphttp "github.com/RebelCode/wp-http"
	"github.com/RebelCode/wp-http/message"
)

// Credentials for HTTP basic authentication, such as a WordPress application password.
type Credentials struct {
	User     string
	Password string
}

// BasicAuth provides an example for middleware that authenticates every request that does not carry
// its own Authorization header.
type BasicAuth struct {
	wphttp.Next
	header string
}

// NewBasicAuth creates the middleware.
func NewBasicAuth(next wphttp.Handler, creds Credentials) *BasicAuth {
	token := base64.StdEncoding.EncodeToString([]byte(creds.User + ":" + creds.Password))
	return &BasicAuth{Next: wphttp.NewNext(next), header: "Basic " + token}
}

// Middleware returns a [wphttp.Middleware] that builds [BasicAuth] with creds.
func Middleware(creds Credentials) wphttp.Middleware {
	return wphttp.FactoryWith(NewBasicAuth, creds)
}

// Handle implements [wphttp.Handler].
func (m *BasicAuth) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	if !req.HasHeader("Authorization") {
		req = req.WithHeader("Authorization", m.header)
	}

	return m.Delegate(ctx, req)
}
