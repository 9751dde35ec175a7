package httptransport

import "net/http"

// OnUnauthorized returns a middleware that invokes fn whenever the backend
// answers 401 Unauthorized, signalling an expired or revoked session. The
// skip predicate exempts requests for which a 401 is an expected outcome
// (the login endpoint itself), mirroring how a browser client suppresses
// the global unauthorized event on its login page.
//
// fn runs after the response is received but before it is returned to the
// caller; the 401 response itself still propagates so the call site can
// report the failure.
func OnUnauthorized(skip func(*http.Request) bool, fn func()) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(r)
			if err != nil {
				return nil, err
			}

			if resp.StatusCode == http.StatusUnauthorized && (skip == nil || !skip(r)) {
				fn()
			}
			return resp, nil
		})
	}
}
