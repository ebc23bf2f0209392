package transport

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/carlmjohnson/requests"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// HTTP is the default [Transport]. It performs calls with net/http, instruments outbound requests
// with OpenTelemetry and keeps one client per distinct set of [Options].
type HTTP struct {
	base     http.RoundTripper
	tp       trace.TracerProvider
	prop     propagation.TextMapPropagator
	logs     *zap.Logger
	resolver *net.Resolver
	clients  sync.Map
}

// Option configures the [HTTP] transport.
type Option func(*HTTP)

// WithRoundTripper sets the underlying round tripper. TLS and decompression options only apply when
// it is an *http.Transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(h *HTTP) { h.base = rt }
}

// WithTracerProvider sets the tracer provider for outbound spans. The TracerProvider is explicitly
// injected to avoid global state.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *HTTP) { h.tp = tp }
}

// WithPropagator sets the propagator used to inject trace context into outbound requests.
func WithPropagator(prop propagation.TextMapPropagator) Option {
	return func(h *HTTP) { h.prop = prop }
}

// WithLogger sets the logger.
func WithLogger(logs *zap.Logger) Option {
	return func(h *HTTP) { h.logs = logs }
}

// WithResolver sets the resolver used to check hosts when unsafe URLs are rejected.
func WithResolver(r *net.Resolver) Option {
	return func(h *HTTP) { h.resolver = r }
}

// New creates the default transport.
func New(opts ...Option) *HTTP {
	h := &HTTP{
		base:     http.DefaultTransport.(*http.Transport).Clone(),
		tp:       noop.NewTracerProvider(),
		prop:     propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
		logs:     zap.NewNop(),
		resolver: net.DefaultResolver,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Perform implements [Transport].
func (h *HTTP) Perform(ctx context.Context, call *Call) (*Result, error) {
	opts := call.Options
	if opts.RejectUnsafeURLs {
		if err := ValidateURL(ctx, h.resolver, call.URL); err != nil {
			return nil, err
		}
	}

	cl, err := h.client(opts)
	if err != nil {
		return nil, err
	}

	header := call.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if opts.UserAgent != "" && header.Get("User-Agent") == "" {
		header.Set("User-Agent", opts.UserAgent)
	}

	body := call.Body
	if opts.Compress && len(body) > 0 {
		if body, err = gzipBytes(body); err != nil {
			return nil, err
		}
		header.Set("Content-Encoding", "gzip")
		header.Del("Content-Length")
	}

	host := header.Get("Host")
	header.Del("Host")

	var (
		res     *Result
		handled bool
	)
	rb := requests.URL(call.URL).
		Method(call.Method).
		Client(cl).
		AddValidator(func(*http.Response) error { return nil }).
		Handle(func(resp *http.Response) error {
			handled = true
			var rerr error
			res, rerr = readResult(resp, opts)
			return rerr
		})
	for _, k := range lo.Keys(header) {
		rb.Header(k, header[k]...)
	}
	if len(body) > 0 {
		rb.BodyBytes(body)
	}

	if opts.NonBlocking {
		go func() {
			bctx := context.WithoutCancel(ctx)
			if err := h.do(bctx, rb, host); err != nil {
				h.logs.Debug("background request failed", zap.String("url", call.URL), zap.Error(err))
			}
		}()
		return &Result{StatusCode: http.StatusAccepted, Reason: http.StatusText(http.StatusAccepted)}, nil
	}

	h.logs.Debug("performing request", zap.String("method", call.Method), zap.String("url", call.URL))
	if err := h.do(ctx, rb, host); err != nil {
		if !handled {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to read response")
	}
	return res, nil
}

// CloseIdleConnections closes the idle connections of every client created so far.
func (h *HTTP) CloseIdleConnections() {
	h.clients.Range(func(_, cl any) bool {
		cl.(*http.Client).CloseIdleConnections()
		return true
	})
}

func (h *HTTP) do(ctx context.Context, rb *requests.Builder, host string) error {
	req, err := rb.Request(ctx)
	if err != nil {
		return err
	}
	if host != "" {
		req.Host = host
	}
	return rb.Do(req)
}

func (h *HTTP) client(opts Options) (*http.Client, error) {
	if cl, ok := h.clients.Load(opts); ok {
		return cl.(*http.Client), nil
	}

	rt := h.base
	if ht, ok := rt.(*http.Transport); ok {
		ht = ht.Clone()
		ht.DisableCompression = opts.NoDecompress
		if opts.InsecureSkipVerify || opts.SSLCertificates != "" {
			cfg := &tls.Config{MinVersion: tls.VersionTLS12}
			if ht.TLSClientConfig != nil {
				cfg = ht.TLSClientConfig.Clone()
			}
			cfg.InsecureSkipVerify = opts.InsecureSkipVerify //nolint:gosec
			if opts.SSLCertificates != "" {
				pool, err := loadCertPool(opts.SSLCertificates)
				if err != nil {
					return nil, err
				}
				cfg.RootCAs = pool
			}
			ht.TLSClientConfig = cfg
		}
		rt = ht
	}

	cl := &http.Client{
		Transport: otelhttp.NewTransport(rt,
			otelhttp.WithTracerProvider(h.tp),
			otelhttp.WithPropagators(h.prop),
		),
		Timeout:       opts.EffectiveTimeout(),
		CheckRedirect: redirectPolicy(opts.EffectiveRedirection()),
	}

	actual, _ := h.clients.LoadOrStore(opts, cl)
	return actual.(*http.Client), nil
}

func redirectPolicy(limit int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		switch {
		case limit < 0:
			return http.ErrUseLastResponse
		case len(via) > limit:
			return errors.Newf("stopped after %d redirects", limit)
		}
		return nil
	}
}

func loadCertPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read certificate bundle")
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Newf("no certificates found in %q", path)
	}
	return pool, nil
}

func gzipBytes(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, errors.Wrap(err, "failed to compress body")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to compress body")
	}
	return buf.Bytes(), nil
}

func readResult(resp *http.Response, opts Options) (*Result, error) {
	res := &Result{
		StatusCode: resp.StatusCode,
		Reason:     reasonOf(resp.Status, resp.StatusCode),
		Header:     resp.Header.Clone(),
	}

	var body io.Reader = resp.Body
	if opts.LimitResponseSize > 0 {
		body = io.LimitReader(body, opts.LimitResponseSize)
	}

	if !opts.Stream {
		b, err := io.ReadAll(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read body")
		}
		res.Body = b
		return res, nil
	}

	f, err := createStreamFile(opts.Filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return nil, errors.Wrapf(err, "failed to stream body to %q", f.Name())
	}
	res.Filename = f.Name()
	return res, nil
}

func createStreamFile(name string) (*os.File, error) {
	if name == "" {
		f, err := os.CreateTemp("", "wphttp-*")
		return f, errors.Wrap(err, "failed to create temporary file")
	}

	f, err := os.Create(name)
	return f, errors.Wrapf(err, "failed to create %q", name)
}

// reasonOf extracts the reason phrase from a status line such as "403 Forbidden".
func reasonOf(status string, code int) string {
	if reason, ok := strings.CutPrefix(status, strconv.Itoa(code)); ok {
		return strings.TrimSpace(reason)
	}
	return http.StatusText(code)
}
