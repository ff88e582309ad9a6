package devserver

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"campusvault/internal/client/api"
	"campusvault/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSession struct {
	mu    sync.Mutex
	token string
}

func (m *memSession) Token(context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memSession) ClearSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memSession) set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func newTestStack(t *testing.T) (*api.Client, *memSession) {
	t.Helper()

	srv := httptest.NewServer(NewServer("test-secret", logging.NewNop()).Router())
	t.Cleanup(srv.Close)

	sess := &memSession{}
	client, err := api.New(srv.URL, sess, logging.NewNop())
	require.NoError(t, err)
	return client, sess
}

func signUpAndIn(t *testing.T, client *api.Client, sess *memSession, email string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, api.RegisterRequest{
		Email:             email,
		Username:          "student1",
		Password:          "secret1",
		ConfirmedPassword: "secret1",
	}))

	res, err := client.Login(ctx, email, "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	sess.set(res.Token)
}

func TestPing(t *testing.T) {
	client, _ := newTestStack(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestRegisterLoginProfile(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	signUpAndIn(t, client, sess, "a@campus.edu")

	prof, err := client.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@campus.edu", prof.Email)
	assert.Equal(t, "student1", prof.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	signUpAndIn(t, client, sess, "dup@campus.edu")

	err := client.Register(ctx, api.RegisterRequest{
		Email:             "dup@campus.edu",
		Username:          "other",
		Password:          "secret1",
		ConfirmedPassword: "secret1",
	})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 40002, apiErr.Code)
}

func TestLoginBadCredentialsKeepsSession(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	signUpAndIn(t, client, sess, "b@campus.edu")
	before := sess.Token(ctx)

	_, err := client.Login(ctx, "b@campus.edu", "wrong-password")
	require.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrSessionExpired)
	assert.Equal(t, before, sess.Token(ctx), "a failed login must not clear the stored session")
}

func TestFileLifecycle(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	signUpAndIn(t, client, sess, "files@campus.edu")

	up, err := client.UploadFile(ctx, "notes.txt", strings.NewReader("lecture one"), "week 1", false)
	require.NoError(t, err)
	require.NotZero(t, up.FileID)
	assert.Equal(t, "notes.txt", up.Filename)
	assert.Equal(t, int64(len("lecture one")), up.Size)

	listing, err := client.ListFiles(ctx, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, listing.Total)
	assert.Equal(t, "notes.txt", listing.Items[0].Filename)
	assert.Equal(t, "week 1", listing.Items[0].Description)

	desc := "week 1 (revised)"
	require.NoError(t, client.UpdateFile(ctx, up.FileID, api.UpdateFileParams{
		Filename:    "notes-v2.txt",
		Content:     strings.NewReader("lecture one, revised"),
		Description: &desc,
	}))

	rc, name, err := client.DownloadFile(ctx, up.FileID)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "notes-v2.txt", name)
	assert.Equal(t, "lecture one, revised", string(body))

	require.NoError(t, client.DeleteFile(ctx, up.FileID))

	listing, err = client.ListFiles(ctx, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, listing.Total)
}

func TestUpdateDescriptionOnlyKeepsContent(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	signUpAndIn(t, client, sess, "descr@campus.edu")

	up, err := client.UploadFile(ctx, "data.bin", strings.NewReader("payload"), "", false)
	require.NoError(t, err)

	desc := "added later"
	require.NoError(t, client.UpdateFile(ctx, up.FileID, api.UpdateFileParams{Description: &desc}))

	rc, name, err := client.DownloadFile(ctx, up.FileID)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "data.bin", name)
	assert.Equal(t, "payload", string(body))

	listing, err := client.ListFiles(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "added later", listing.Items[0].Description)
}

func TestPublicUploadNeedsNoSession(t *testing.T) {
	client, _ := newTestStack(t)
	ctx := context.Background()

	up, err := client.UploadFile(ctx, "anon.txt", strings.NewReader("hi"), "", true)
	require.NoError(t, err)
	assert.NotZero(t, up.FileID)
}

func TestPageSizeClamp(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	signUpAndIn(t, client, sess, "pages@campus.edu")

	for i := 0; i < 25; i++ {
		_, err := client.UploadFile(ctx, "f.txt", strings.NewReader("x"), "", false)
		require.NoError(t, err)
	}

	// Out-of-range size falls back to the default of 20.
	listing, err := client.ListFiles(ctx, 1, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 25, listing.Total)
	assert.Len(t, listing.Items, 20)

	listing, err = client.ListFiles(ctx, 2, 1000)
	require.NoError(t, err)
	assert.Len(t, listing.Items, 5)
}

func TestBadTokenExpiresSession(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	sess.set("not-a-jwt")

	fired := 0
	client.SetSessionExpiredHook(func() { fired++ })

	_, err := client.GetProfile(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrSessionExpired))
	assert.Empty(t, sess.Token(ctx), "401 must clear the session")
	assert.Equal(t, 1, fired)
}

func TestTokenFromWrongKeyIsRejected(t *testing.T) {
	other := NewServer("other-secret", logging.NewNop())
	foreign, err := other.generateToken(1)
	require.NoError(t, err)

	client, sess := newTestStack(t)
	sess.set(foreign)

	_, err = client.GetProfile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrSessionExpired))
}

func TestDownloadMissingFile(t *testing.T) {
	client, sess := newTestStack(t)
	ctx := context.Background()

	signUpAndIn(t, client, sess, "missing@campus.edu")

	_, _, err := client.DownloadFile(ctx, 999)
	require.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrSessionExpired)
}
