// Package httptransport provides composable http.RoundTripper middleware
// for outbound API calls: request IDs, user agent, request logging, and a
// hook for expired sessions.
package httptransport

import "net/http"

// Middleware wraps an http.RoundTripper with additional behaviour.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Wrap applies middlewares to a RoundTripper. The first middleware in the
// list is the outermost: it sees the request first and the response last.
func Wrap(rt http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		rt = middlewares[i](rt)
	}
	return rt
}
