// Package wphttpfx provides the wphttp client through fx dependency injection.
//
// The module reads its configuration from WPHTTP_* environment variables, builds a zap logger, a
// tracer provider and the default transport, and exposes a [*wphttp.Client]. Extra middleware can be
// contributed by any module with [AsMiddleware]:
//
//	fx.New(
//	    wphttpfx.Module,
//	    fx.Provide(wphttpfx.AsMiddleware(func() wphttp.Middleware {
//	        return wphttp.CircuitBreakerMiddleware(wphttp.BreakerSettings{})
//	    })),
//	    fx.Invoke(func(c *wphttp.Client) { ... }),
//	)
package wphttpfx

import (
	"context"
	"fmt"
	"net/url"

	wphttp "github.com/RebelCode/wp-http"
	"github.com/RebelCode/wp-http/transport"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MiddlewareGroup is the fx value group collecting extra middleware.
const MiddlewareGroup = "wphttp.middleware"

// Config holds the settings of the module itself. Transport settings are read separately into
// [transport.Options].
type Config struct {
	LogLevel     zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
	OtelExporter string        `env:"OTEL_EXPORTER" envDefault:"none"`
	ServiceName  string        `env:"SERVICE_NAME" envDefault:"wphttp"`
	BaseURI      url.URL       `env:"BASE_URI"`
}

// ParseEnv reads Config from WPHTTP_* environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: transport.EnvPrefix}); err != nil {
		return cfg, errors.Wrap(err, "failed to parse environment")
	}
	return cfg, nil
}

// Module provides a [*wphttp.Client], the [*wphttp.HandlerStack] behind it and their dependencies.
var Module = fx.Module("wphttp",
	fx.Provide(
		ParseEnv,
		transport.ParseEnv,
		NewLogger,
		NewTracerProvider,
		NewPropagator,
		NewTransport,
		NewHandlerStack,
		NewClient,
	),
)

// AsMiddleware annotates a constructor so its [wphttp.Middleware] result joins the middleware group.
func AsMiddleware(ctor any) any {
	return fx.Annotate(ctor, fx.ResultTags(fmt.Sprintf("group:%q", MiddlewareGroup)))
}

// NewLogger creates the zap logger at the configured level.
func NewLogger(cfg Config) (*zap.Logger, error) {
	return wphttp.NewLogger(cfg.LogLevel)
}

// NewTracerProvider creates the tracer provider for outbound spans. Supported exporters via
// WPHTTP_OTEL_EXPORTER: "none" (default) and "stdout". Shutdown is handled via fx.Lifecycle.
func NewTracerProvider(lc fx.Lifecycle, cfg Config) (trace.TracerProvider, error) {
	switch cfg.OtelExporter {
	case "none", "":
		return noop.NewTracerProvider(), nil
	case "stdout":
	default:
		return nil, errors.Newf("unsupported OTEL_EXPORTER: %q (supported: none, stdout)", cfg.OtelExporter)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		)),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return tp, nil
}

// NewPropagator creates the W3C TraceContext + Baggage composite propagator.
func NewPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

// NewTransport creates the default transport. Idle connections are closed when the app stops.
func NewTransport(
	lc fx.Lifecycle, logs *zap.Logger, tp trace.TracerProvider, prop propagation.TextMapPropagator,
) transport.Transport {
	tr := transport.New(
		transport.WithLogger(logs.Named("wphttp.transport")),
		transport.WithTracerProvider(tp),
		transport.WithPropagator(prop),
	)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			tr.CloseIdleConnections()
			return nil
		},
	})

	return tr
}

// StackParams holds the dependencies of [NewHandlerStack].
type StackParams struct {
	fx.In

	Options     transport.Options
	Transport   transport.Transport
	Logger      *zap.Logger
	Middlewares []wphttp.Middleware `group:"wphttp.middleware"`
}

// NewHandlerStack creates the default stack with request logging and any grouped middleware appended.
func NewHandlerStack(p StackParams) *wphttp.HandlerStack {
	logs := wphttp.NewZapLogger(p.Logger)

	return wphttp.NewDefaultHandlerStack(p.Options,
		wphttp.WithTransport(p.Transport),
		wphttp.WithLogger(logs),
		wphttp.WithMiddlewares(wphttp.LogRequestsMiddleware(logs)),
		wphttp.WithMiddlewares(p.Middlewares...),
	)
}

// NewClient creates the client, resolving against WPHTTP_BASE_URI when it is set.
func NewClient(cfg Config, stack *wphttp.HandlerStack) *wphttp.Client {
	var opts []wphttp.ClientOption
	if cfg.BaseURI.Host != "" {
		base := cfg.BaseURI
		opts = append(opts, wphttp.WithBaseURI(&base))
	}

	return wphttp.NewClient(stack, opts...)
}
