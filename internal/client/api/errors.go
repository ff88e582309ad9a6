package api

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned by any authenticated call answered with
	// HTTP 401. By the time the caller sees it, the session has already been
	// cleared and the redirect hook fired.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnavailable wraps transport-level failures (connection refused,
	// timeouts, DNS errors).
	ErrUnavailable = errors.New("server unavailable")
)

// Error carries the backend's failure code and message so callers can show
// the exact text the server produced.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// newError builds an Error from an envelope, preferring the envelope's own
// code and falling back to the HTTP status.
func newError(env *Envelope, status int, fallback string) *Error {
	code := status
	if env != nil && env.Code != nil {
		code = *env.Code
	}
	return &Error{Code: code, Message: ErrorMessage(env, fallback)}
}
