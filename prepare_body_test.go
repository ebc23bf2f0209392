package wphttp_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	wphttp "github.com/RebelCode/wp-http"
	"github.com/RebelCode/wp-http/message"
	"github.com/stretchr/testify/require"
)

// capture returns a handler that remembers the request it was given.
func capture(seen **message.Request) wphttp.Handler {
	return wphttp.HandlerFunc(func(_ context.Context, req *message.Request) (*message.Response, error) {
		*seen = req
		return message.NewResponse(http.StatusOK, nil, nil), nil
	})
}

func TestPrepareBodyEmptyPassesThrough(t *testing.T) {
	var seen *message.Request
	req := message.MustParseRequest(http.MethodPost, "http://example.org/", nil)

	_, err := wphttp.NewPrepareBody(capture(&seen)).Handle(t.Context(), req)
	require.NoError(t, err)
	require.Same(t, req, seen)
	require.False(t, seen.HasHeader("Content-Length"))

	sized := message.MustParseRequest(http.MethodPost, "http://example.org/", message.StringBody("hello")).
		WithHeader("Content-Length", "3")
	_, err = wphttp.NewPrepareBody(capture(&seen)).Handle(t.Context(), sized)
	require.NoError(t, err)
	require.Same(t, sized, seen)
	require.Equal(t, "3", seen.HeaderLine("Content-Length"))
	require.False(t, seen.HasHeader("Transfer-Encoding"))
}

func TestPrepareBodyKnownSize(t *testing.T) {
	var seen *message.Request
	req := message.MustParseRequest(http.MethodPost, "http://example.org/", message.StringBody("hello"))

	_, err := wphttp.NewPrepareBody(capture(&seen)).Handle(t.Context(), req)
	require.NoError(t, err)
	require.Equal(t, "5", seen.HeaderLine("Content-Length"))
	require.False(t, seen.HasHeader("Transfer-Encoding"))
	require.False(t, seen.HasHeader("Content-Type"))
	require.False(t, req.HasHeader("Content-Length"), "caller request is untouched")
}

func TestPrepareBodyUnknownSize(t *testing.T) {
	var seen *message.Request
	req := message.MustParseRequest(http.MethodPost, "http://example.org/",
		message.ReaderBody(strings.NewReader("stream")))

	_, err := wphttp.NewPrepareBody(capture(&seen)).Handle(t.Context(), req)
	require.NoError(t, err)
	require.Equal(t, "chunked", seen.HeaderLine("Transfer-Encoding"))
	require.False(t, seen.HasHeader("Content-Length"))
}

func TestPrepareBodyKeepsCallerHeaders(t *testing.T) {
	var seen *message.Request
	req := message.MustParseRequest(http.MethodPost, "http://example.org/", message.StringBody("hello")).
		WithHeader("Transfer-Encoding", "gzip")

	_, err := wphttp.NewPrepareBody(capture(&seen)).Handle(t.Context(), req)
	require.NoError(t, err)
	require.Same(t, req, seen)
	require.False(t, seen.HasHeader("Content-Length"))
}

func TestPrepareBodyContentTypeFromFile(t *testing.T) {
	dir := t.TempDir()
	for name, want := range map[string]string{
		"my-file.txt":      "text/plain",
		"some-file.xml":    "application/xml",
		"archive.unknown1": "",
		"no-extension":     "",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
		f, err := os.Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })

		body, err := message.FileBody(f)
		require.NoError(t, err)

		var seen *message.Request
		req := message.MustParseRequest(http.MethodPut, "http://example.org/upload", body)
		_, err = wphttp.NewPrepareBody(capture(&seen)).Handle(t.Context(), req)
		require.NoError(t, err)
		require.Equal(t, want != "", seen.HasHeader("Content-Type"), name)
		require.Equal(t, want, seen.HeaderLine("Content-Type"), name)
		require.Equal(t, "4", seen.HeaderLine("Content-Length"))

		var kept *message.Request
		typed := req.WithHeader("Content-Type", "application/octet-stream")
		_, err = wphttp.NewPrepareBody(capture(&kept)).Handle(t.Context(), typed)
		require.NoError(t, err)
		require.Equal(t, "application/octet-stream", kept.HeaderLine("Content-Type"))
	}
}

func TestHTTPErrors(t *testing.T) {
	req := message.MustParseRequest(http.MethodGet, "http://example.org/", nil)

	for _, code := range []int{100, 200, 204, 301, 304, 399} {
		resp := message.NewResponse(code, nil, nil)
		got, err := wphttp.NewHTTPErrors(reply(resp, nil)).Handle(t.Context(), req)
		require.NoError(t, err)
		require.Same(t, resp, got, code)
	}

	for code, target := range map[int]error{400: wphttp.ErrClient, 451: wphttp.ErrClient, 500: wphttp.ErrServer, 600: wphttp.ErrBadResponse} {
		got, err := wphttp.NewHTTPErrors(reply(message.NewResponse(code, nil, nil), nil)).Handle(t.Context(), req)
		require.Nil(t, got)
		require.ErrorIs(t, err, target, code)
		require.Equal(t, code, wphttp.CodeOf(err))
	}

	inner := wphttp.NewNetworkError(req, nil)
	_, err := wphttp.NewHTTPErrors(reply(nil, inner)).Handle(t.Context(), req)
	require.Same(t, inner, err, "inner errors propagate unmodified")
}

func reply(resp *message.Response, err error) wphttp.Handler {
	return wphttp.HandlerFunc(func(context.Context, *message.Request) (*message.Response, error) {
		return resp, err
	})
}
