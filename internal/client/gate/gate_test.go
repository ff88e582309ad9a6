package gate

import (
	"context"
	"errors"
	"testing"

	"campusvault/internal/client/api"
	"campusvault/internal/logging"

	"github.com/stretchr/testify/require"
)

type fakeProfileAPI struct {
	calls int
	prof  *api.Profile
	err   error
}

func (f *fakeProfileAPI) GetProfile(context.Context) (*api.Profile, error) {
	f.calls++
	return f.prof, f.err
}

type fakeSession struct {
	token   string
	cleared int
}

func (f *fakeSession) Token(context.Context) string { return f.token }
func (f *fakeSession) ClearSession(context.Context) error {
	f.token = ""
	f.cleared++
	return nil
}

func TestPublicPathsSkipEverything(t *testing.T) {
	for _, path := range []string{"/", "/login", "/register", "/register_result"} {
		t.Run(path, func(t *testing.T) {
			backend := &fakeProfileAPI{}
			g := New(backend, &fakeSession{}, logging.NewNop())

			res := g.Check(context.Background(), path)
			require.True(t, res.Allowed)
			require.Empty(t, res.RedirectTo)
			require.Zero(t, backend.calls, "public page must not hit the network")
		})
	}
}

func TestGatedPathWithoutTokenRedirectsWithoutNetwork(t *testing.T) {
	backend := &fakeProfileAPI{}
	sess := &fakeSession{}
	g := New(backend, sess, logging.NewNop())

	res := g.Check(context.Background(), "/index")
	require.False(t, res.Allowed)
	require.Equal(t, LoginPath, res.RedirectTo)
	require.Zero(t, backend.calls)
	require.Zero(t, sess.cleared)
}

func TestGatedPathWithValidTokenLoadsProfile(t *testing.T) {
	backend := &fakeProfileAPI{prof: &api.Profile{Email: "a@b.com"}}
	g := New(backend, &fakeSession{token: "T"}, logging.NewNop())

	res := g.Check(context.Background(), "/index")
	require.True(t, res.Allowed)
	require.NotNil(t, res.Profile)
	require.Equal(t, "a@b.com", res.Profile.Email)
}

func TestGatedPathWithBadTokenClearsAndRedirects(t *testing.T) {
	backend := &fakeProfileAPI{err: errors.New("boom")}
	sess := &fakeSession{token: "T"}
	g := New(backend, sess, logging.NewNop())

	res := g.Check(context.Background(), "/timetable")
	require.False(t, res.Allowed)
	require.Equal(t, LoginPath, res.RedirectTo)
	require.Equal(t, 1, sess.cleared)
}

func TestExpiredSessionIsNotClearedTwice(t *testing.T) {
	// The transport clears the session before surfacing ErrSessionExpired;
	// the gate must not clear it again.
	backend := &fakeProfileAPI{err: api.ErrSessionExpired}
	sess := &fakeSession{token: "T"}
	g := New(backend, sess, logging.NewNop())

	res := g.Check(context.Background(), "/index")
	require.Equal(t, LoginPath, res.RedirectTo)
	require.Zero(t, sess.cleared)
}
