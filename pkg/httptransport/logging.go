package httptransport

import (
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// LogRequests returns a middleware that logs every outgoing request with
// its method, path, status, and duration. The logger is taken from the
// request context via zctx, so per-request fields set upstream are kept.
func LogRequests() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			lg := zctx.From(r.Context())
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			}
			if id := RequestIDFromContext(r.Context()); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}

			if err != nil {
				lg.Debug("Request failed", append(fields, zap.Error(err))...)
				return nil, err
			}

			lg.Debug("Request completed", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}

// UserAgent returns a middleware that sets the User-Agent header on every
// outgoing request that does not already carry one.
func UserAgent(ua string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("User-Agent") == "" {
				r = r.Clone(r.Context())
				r.Header.Set("User-Agent", ua)
			}
			return next.RoundTrip(r)
		})
	}
}
