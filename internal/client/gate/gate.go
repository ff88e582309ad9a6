// Package gate enforces that non-public pages require a valid session. The
// check runs once per navigation: a missing token short-circuits to the login
// page without touching the network; a present token is validated with a
// single best-effort profile fetch. There is no polling and no token refresh.
package gate

import (
	"context"
	"errors"

	"campusvault/internal/client/api"
	"campusvault/internal/logging"
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/"

// publicPaths never require authentication.
var publicPaths = map[string]struct{}{
	"/":                {},
	"/login":           {},
	"/register":        {},
	"/register_result": {},
}

// IsPublic reports whether path can be visited without a session.
func IsPublic(path string) bool {
	_, ok := publicPaths[path]
	return ok
}

// ProfileAPI is the single backend call the gate needs.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*api.Profile, error)
}

// Session is the slice of the session store the gate consumes.
type Session interface {
	Token(ctx context.Context) string
	ClearSession(ctx context.Context) error
}

// Result is the gate's decision for one navigation.
type Result struct {
	// Allowed is true when the page may render.
	Allowed bool

	// RedirectTo carries the target path when the user must be sent away.
	RedirectTo string

	// Profile holds the validated account identity on gated pages, for
	// display elements that show who is signed in.
	Profile *api.Profile
}

// Gate decides page access from the session state.
type Gate struct {
	api  ProfileAPI
	sess Session
	log  logging.Logger
}

func New(profileAPI ProfileAPI, sess Session, log logging.Logger) *Gate {
	return &Gate{api: profileAPI, sess: sess, log: log}
}

// Check applies the gate algorithm for one page load.
//
// Public path: allow, no network. Gated path without a token: redirect to
// login immediately, no network. Gated path with a token: validate it with a
// profile fetch; any failure clears the session and redirects — but the
// clearing only ever happens on gated paths, so public pages that
// opportunistically show profile info can never cause a redirect loop.
func (g *Gate) Check(ctx context.Context, path string) Result {
	if IsPublic(path) {
		return Result{Allowed: true}
	}

	if g.sess.Token(ctx) == "" {
		return Result{RedirectTo: LoginPath}
	}

	prof, err := g.api.GetProfile(ctx)
	if err != nil {
		g.log.Warn(ctx, "session validation failed", "path", path, "err", err)
		// The 401 path clears the session inside the transport; every other
		// failure (network, malformed payload) is cleared here.
		if !errors.Is(err, api.ErrSessionExpired) {
			if cerr := g.sess.ClearSession(ctx); cerr != nil {
				g.log.Error(ctx, "clear session", "err", cerr)
			}
		}
		return Result{RedirectTo: LoginPath}
	}

	return Result{Allowed: true, Profile: prof}
}
