package httptransport

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey is the context key for the request ID value.
type requestIDKey struct{}

// ContextWithRequestID attaches a caller-chosen request ID to the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext extracts the request ID from the context.
// It returns an empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID returns a middleware that stamps every outgoing request with an
// X-Request-ID header. A request ID already present on the context or the
// request is reused; otherwise a new UUID v4 is generated. The chosen ID is
// stored back on the request context (retrieve with RequestIDFromContext).
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			id := RequestIDFromContext(r.Context())
			if id == "" {
				id = r.Header.Get("X-Request-ID")
			}
			if id == "" {
				id = uuid.New().String()
			}

			// RoundTrippers must not mutate the caller's request.
			r = r.Clone(ContextWithRequestID(r.Context(), id))
			r.Header.Set("X-Request-ID", id)

			return next.RoundTrip(r)
		})
	}
}
