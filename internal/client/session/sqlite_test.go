package session

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	base, err := url.Parse("http://127.0.0.1:8080")
	require.NoError(t, err)

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"), base)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTokenEmptyWhenLoggedOut(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.Equal(t, "", s.Token(ctx))
	require.Equal(t, "", s.Email(ctx))
}

func TestSetSessionPersistsAndMirrorsCookie(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, "T", "a@b.com"))

	require.Equal(t, "T", s.Token(ctx))
	require.Equal(t, "a@b.com", s.Email(ctx))

	var found bool
	for _, c := range s.jar.Cookies(s.apiBase) {
		if c.Name == "token" && c.Value == "T" {
			found = true
		}
	}
	require.True(t, found, "token cookie not mirrored")
}

func TestTokenFallsBackToCookie(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Simulate a cookie set elsewhere (e.g. by a server response) with no
	// persisted token.
	require.NoError(t, s.SetSession(ctx, "T", "a@b.com"))
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key='token'`)
	require.NoError(t, err)

	require.Equal(t, "T", s.Token(ctx))
}

func TestClearSessionIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, "T", "a@b.com"))
	require.NoError(t, s.ClearSession(ctx))

	require.Equal(t, "", s.Token(ctx))
	require.Equal(t, "", s.Email(ctx))
	require.Empty(t, s.jar.Cookies(s.apiBase))

	// Clearing again must not fail.
	require.NoError(t, s.ClearSession(ctx))
	require.NoError(t, s.ClearSession(ctx))
}
