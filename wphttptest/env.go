package wphttptest

import (
	"strconv"
	"testing"
	"time"

	"github.com/RebelCode/wp-http/transport"
)

// Env provides a chainable builder for setting [transport.Options] env vars via t.Setenv. Create one
// with [SetEnv].
type Env struct {
	t testing.TB
}

// SetEnv sets test defaults for the WPHTTP_* env vars:
//   - WPHTTP_TIMEOUT: "2s"
//   - WPHTTP_REDIRECTION: "5"
//   - WPHTTP_USER_AGENT: "wphttptest"
//
// Use the returned [Env] to override individual values:
//
//	wphttptest.SetEnv(t).Timeout(time.Second).NonBlocking(true)
func SetEnv(t testing.TB) *Env {
	t.Helper()
	t.Setenv(transport.EnvPrefix+"TIMEOUT", "2s")
	t.Setenv(transport.EnvPrefix+"REDIRECTION", "5")
	t.Setenv(transport.EnvPrefix+"USER_AGENT", "wphttptest")
	return &Env{t: t}
}

// Timeout overrides WPHTTP_TIMEOUT.
func (e *Env) Timeout(d time.Duration) *Env {
	e.t.Helper()
	e.t.Setenv(transport.EnvPrefix+"TIMEOUT", d.String())
	return e
}

// Redirection overrides WPHTTP_REDIRECTION.
func (e *Env) Redirection(n int) *Env {
	e.t.Helper()
	e.t.Setenv(transport.EnvPrefix+"REDIRECTION", strconv.Itoa(n))
	return e
}

// UserAgent overrides WPHTTP_USER_AGENT.
func (e *Env) UserAgent(ua string) *Env {
	e.t.Helper()
	e.t.Setenv(transport.EnvPrefix+"USER_AGENT", ua)
	return e
}

// NonBlocking sets WPHTTP_NON_BLOCKING.
func (e *Env) NonBlocking(v bool) *Env {
	e.t.Helper()
	e.t.Setenv(transport.EnvPrefix+"NON_BLOCKING", strconv.FormatBool(v))
	return e
}

// RejectUnsafeURLs sets WPHTTP_REJECT_UNSAFE_URLS.
func (e *Env) RejectUnsafeURLs(v bool) *Env {
	e.t.Helper()
	e.t.Setenv(transport.EnvPrefix+"REJECT_UNSAFE_URLS", strconv.FormatBool(v))
	return e
}
