package api

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

// Error is a non-2xx answer from the backend. Message is the human-readable
// text from the server's error payload and may be empty when the body did
// not carry one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ServerMessage returns the server-provided message, if any. Callers use it
// to surface backend wording in notifications without depending on this
// package's concrete type.
func (e *Error) ServerMessage() string {
	return e.Message
}

// IsNotFound reports whether err is a backend 404, e.g. removing a cart
// line whose product id is already absent.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
