// Package wphttp provides an HTTP client built from a chain of middleware handlers around a transport.
//
// # Overview
//
// A request travels through an ordered list of middleware before it reaches the transport, and the
// response travels back through the same list in reverse. Middleware is constructed lazily, the first
// time a [HandlerStack] is used, and the resulting chain is reused afterwards. Error responses are
// turned into typed errors whose messages are safe to log.
//
// A minimal example:
//
//	base, _ := url.Parse("https://example.org/wp-json/")
//	client := wphttp.NewDefaultClient(base, wphttp.Options{Timeout: 10 * time.Second})
//
//	resp, err := client.SendRequest(ctx, message.MustParseRequest(http.MethodGet, "wp/v2/posts", nil))
//	switch {
//	case errors.Is(err, wphttp.ErrClient):
//	    // 4xx, the response is available via wphttp.AsError
//	case errors.Is(err, wphttp.ErrServer):
//	    // 5xx
//	case errors.Is(err, wphttp.ErrNetwork):
//	    // no response at all
//	}
//
// # Middleware
//
// Middleware embeds [Next] and is built by a constructor that receives the next handler:
//
//	type Stamp struct{ wphttp.Next }
//
//	func NewStamp(next wphttp.Handler) *Stamp { return &Stamp{wphttp.NewNext(next)} }
//
//	func (m *Stamp) Handle(ctx context.Context, req *message.Request) (*message.Response, error) {
//	    return m.Delegate(ctx, req.WithHeader("X-Stamp", "1"))
//	}
//
//	stack := wphttp.NewHandlerStack(handler, wphttp.Factory(NewStamp))
//
// Constructors with an extra argument are adapted with [FactoryWith]. The first middleware in the list
// is the outermost. [NewDefaultHandlerStack] installs [PrepareBody] and [HTTPErrors] in that order.
//
// # Errors
//
// Every error produced by the client is an [*Error] with a [Kind]. Status codes in [400, 500) give
// [KindClient], [500, 600) give [KindServer] and any other code of 400 or above gives
// [KindBadResponse]. Requests that received no response give [KindNetwork]. The sentinels such as
// [ErrClient] and [ErrResponse] allow matching whole families with errors.Is.
package wphttp
