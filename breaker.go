package wphttp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/RebelCode/wp-http/message"
	"github.com/cockroachdb/errors"
	"github.com/sony/gobreaker/v2"
)

// DefaultConsecutiveFailures trips a breaker when BreakerSettings.ConsecutiveFailures is zero.
const DefaultConsecutiveFailures = 5

// BreakerSettings configures [CircuitBreaker].
type BreakerSettings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts are cleared. Zero never clears them.
	Interval time.Duration
	// Timeout before an open breaker becomes half-open.
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker.
	ConsecutiveFailures uint32
	// Logger is informed of state changes.
	Logger Logger
}

// errServerStatus marks a 5xx response so the breaker counts it while it is still returned.
var errServerStatus = errors.New("server error status")

// CircuitBreaker stops sending requests to a resource after repeated network errors or 5xx responses.
// A resource is a method and URL path. While a breaker is open requests fail with a network error
// without reaching the next handler.
type CircuitBreaker struct {
	Next
	settings BreakerSettings
	breakers sync.Map
}

// NewCircuitBreaker creates the middleware.
func NewCircuitBreaker(next Handler, settings BreakerSettings) *CircuitBreaker {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = DefaultConsecutiveFailures
	}
	if settings.Logger == nil {
		settings.Logger = NewNopLogger()
	}

	return &CircuitBreaker{Next: NewNext(next), settings: settings}
}

// CircuitBreakerMiddleware returns a [Middleware] that builds [CircuitBreaker] with settings.
func CircuitBreakerMiddleware(settings BreakerSettings) Middleware {
	return FactoryWith(NewCircuitBreaker, settings)
}

// Handle implements [Handler].
func (m *CircuitBreaker) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
	cb := m.breaker(resourceOf(req))

	resp, err := cb.Execute(func() (*message.Response, error) {
		resp, err := m.Delegate(ctx, req)
		if err == nil && resp.StatusCode() >= 500 {
			return resp, errServerStatus
		}
		return resp, err
	})

	switch {
	case errors.Is(err, errServerStatus):
		return resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, NewNetworkError(req, err)
	case err != nil:
		return nil, err
	}

	return resp, nil
}

// State returns the breaker state of the resource req belongs to.
func (m *CircuitBreaker) State(req *message.Request) gobreaker.State {
	return m.breaker(resourceOf(req)).State()
}

func (m *CircuitBreaker) breaker(resource string) *gobreaker.CircuitBreaker[*message.Response] {
	if cb, ok := m.breakers.Load(resource); ok {
		return cb.(*gobreaker.CircuitBreaker[*message.Response])
	}

	threshold := m.settings.ConsecutiveFailures
	logs := m.settings.Logger
	cb := gobreaker.NewCircuitBreaker[*message.Response](gobreaker.Settings{
		Name:        fmt.Sprintf("http client circuit breaker for resource %s", resource),
		MaxRequests: m.settings.MaxRequests,
		Interval:    m.settings.Interval,
		Timeout:     m.settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logs.LogBreakerStateChange(name, from.String(), to.String())
		},
	})

	actual, _ := m.breakers.LoadOrStore(resource, cb)
	return actual.(*gobreaker.CircuitBreaker[*message.Response])
}

func isBreakerSuccess(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, errServerStatus), errors.Is(err, ErrServer), errors.Is(err, ErrNetwork):
		return false
	}
	return true
}

func resourceOf(req *message.Request) string {
	return req.Method() + "_" + req.URI().Path
}
