package wphttp

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/RebelCode/wp-http/message"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogDispatch(req *message.Request)
	LogTransportError(req *message.Request, err error)
	LogRoundTrip(req *message.Request, resp *message.Response, err error, took time.Duration)
	LogBreakerStateChange(name, from, to string)
}

// NewLogger creates a zap logger with JSON encoding and ISO8601 timestamps.
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

type zapLogger struct{ *zap.Logger }

// NewZapLogger returns a [Logger] that writes to l.
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{l.Named("wphttp")}
}

func (l zapLogger) LogDispatch(req *message.Request) {
	l.Logger.Debug("dispatching request",
		zap.String("method", req.Method()),
		zap.String("url", RedactURL(req.URI())))
}

func (l zapLogger) LogTransportError(req *message.Request, err error) {
	l.Logger.Warn("transport error",
		zap.String("method", req.Method()),
		zap.String("url", RedactURL(req.URI())),
		zap.Error(err))
}

func (l zapLogger) LogRoundTrip(req *message.Request, resp *message.Response, err error, took time.Duration) {
	fields := []zap.Field{
		zap.String("method", req.Method()),
		zap.String("url", RedactURL(req.URI())),
		zap.Duration("took", took),
	}

	if herr, ok := AsError(err); ok && herr.Response() != nil {
		resp = herr.Response()
	}
	if resp != nil {
		fields = append(fields, zap.Int("status", resp.StatusCode()))
	}

	if err != nil {
		l.Logger.Warn("request failed", append(fields, zap.Error(err))...)
		return
	}
	l.Logger.Debug("request completed", fields...)
}

func (l zapLogger) LogBreakerStateChange(name, from, to string) {
	l.Logger.Info("circuit breaker state changed",
		zap.String("name", name),
		zap.String("from", from),
		zap.String("to", to))
}

// NewNopLogger returns a [Logger] that discards everything.
func NewNopLogger() Logger {
	return NewZapLogger(zap.NewNop())
}

// TestLogger counts log calls and forwards them to the test log.
type TestLogger struct {
	tb testing.TB

	NumLogDispatch           int64
	NumLogTransportError     int64
	NumLogRoundTrip          int64
	NumLogBreakerStateChange int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogDispatch(req *message.Request) {
	atomic.AddInt64(&l.NumLogDispatch, 1)
	l.tb.Logf("wphttp: dispatching %s", req)
}

func (l *TestLogger) LogTransportError(req *message.Request, err error) {
	atomic.AddInt64(&l.NumLogTransportError, 1)
	l.tb.Logf("wphttp: transport error for %s: %s", req, err)
}

func (l *TestLogger) LogRoundTrip(req *message.Request, _ *message.Response, err error, took time.Duration) {
	atomic.AddInt64(&l.NumLogRoundTrip, 1)
	l.tb.Logf("wphttp: %s took %s (err: %v)", req, took, err)
}

func (l *TestLogger) LogBreakerStateChange(name, from, to string) {
	atomic.AddInt64(&l.NumLogBreakerStateChange, 1)
	l.tb.Logf("wphttp: breaker %s changed from %s to %s", name, from, to)
}

var _ Logger = &TestLogger{}
