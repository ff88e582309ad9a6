// Package session owns the client-side session: the bearer token and the
// account email. The token is persisted in a local SQLite key-value table and
// mirrored into a "token" cookie for the API origin, so the backend's
// cookie-fallback authentication keeps working for endpoints that read it.
//
// Token presence is the single source of truth for "is a user logged in";
// nothing else in the client may touch the underlying storage directly.
package session

import (
	"context"
	"net/http"
)

// Store is the session lifecycle contract consumed by the API client, the
// auth gate, and the controllers.
type Store interface {
	// Token returns the current bearer token, preferring persistent storage
	// and falling back to the mirrored cookie. Empty when logged out.
	// It has no side effects.
	Token(ctx context.Context) string

	// Email returns the stored account email, or empty.
	Email(ctx context.Context) string

	// SetSession persists token and email and mirrors the token cookie.
	SetSession(ctx context.Context, token, email string) error

	// ClearSession removes all identity keys and expires the cookie.
	// Clearing an already-empty session is a no-op.
	ClearSession(ctx context.Context) error
}

// Jarred is implemented by stores that maintain a cookie jar for the API
// origin. The HTTP client is constructed with this jar so the mirrored token
// cookie rides along on every request.
type Jarred interface {
	Jar() http.CookieJar
}
