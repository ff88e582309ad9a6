package vault

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"campusvault/internal/client/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileAPI struct {
	listCalls     int
	uploadCalls   int
	updateCalls   int
	deleteCalls   int
	downloadCalls int

	listing *api.FileListing
	listErr error

	uploadedName   string
	uploadedDesc   string
	uploadedPublic bool
	uploadedBody   []byte

	updateParams api.UpdateFileParams
	updateBody   []byte

	deletedID uint

	downloadBody      string
	downloadSuggested string
	downloadErr       error
}

func (f *fakeFileAPI) ListFiles(_ context.Context, page, size int) (*api.FileListing, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listing != nil {
		return f.listing, nil
	}
	return &api.FileListing{}, nil
}

func (f *fakeFileAPI) UploadFile(_ context.Context, filename string, content io.Reader, description string, public bool) (*api.UploadResult, error) {
	f.uploadCalls++
	f.uploadedName = filename
	f.uploadedDesc = description
	f.uploadedPublic = public
	f.uploadedBody, _ = io.ReadAll(content)
	return &api.UploadResult{FileID: 7, Filename: filename}, nil
}

func (f *fakeFileAPI) UpdateFile(_ context.Context, id uint, p api.UpdateFileParams) error {
	f.updateCalls++
	f.updateParams = p
	if p.Content != nil {
		f.updateBody, _ = io.ReadAll(p.Content)
	}
	return nil
}

func (f *fakeFileAPI) DeleteFile(_ context.Context, id uint) error {
	f.deleteCalls++
	f.deletedID = id
	return nil
}

func (f *fakeFileAPI) DownloadFile(_ context.Context, id uint) (io.ReadCloser, string, error) {
	f.downloadCalls++
	if f.downloadErr != nil {
		return nil, "", f.downloadErr
	}
	return io.NopCloser(strings.NewReader(f.downloadBody)), f.downloadSuggested, nil
}

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

func newTestController(t *testing.T, backend *fakeFileAPI, token string) (*Controller, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := New(backend, staticToken(token), &out, t.TempDir())
	c.Confirm = func(string) bool { return true }
	return c, &out
}

func TestListWithoutTokenRendersPlaceholderWithoutNetwork(t *testing.T) {
	backend := &fakeFileAPI{}
	c, out := newTestController(t, backend, "")

	require.NoError(t, c.List(context.Background()))
	assert.Zero(t, backend.listCalls, "logged-out list must not hit the network")
	assert.Contains(t, out.String(), "Sign in")
}

func TestListRendersListing(t *testing.T) {
	backend := &fakeFileAPI{listing: &api.FileListing{
		Total: 2,
		Items: []api.FileRecord{
			{ID: 1, Filename: "notes.txt", Size: 512, Description: "lecture notes", CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
			{ID: 2, Filename: "slides.pdf", Size: 2048},
		},
	}}
	c, out := newTestController(t, backend, "T")

	require.NoError(t, c.List(context.Background()))
	require.Equal(t, 1, backend.listCalls)
	assert.Contains(t, out.String(), "notes.txt")
	assert.Contains(t, out.String(), "lecture notes")
	assert.Contains(t, out.String(), "2026-03-01 09:30")
}

func TestListEmptyVault(t *testing.T) {
	backend := &fakeFileAPI{listing: &api.FileListing{Total: 0}}
	c, out := newTestController(t, backend, "T")

	require.NoError(t, c.List(context.Background()))
	assert.Contains(t, out.String(), "No files yet")
}

func TestUploadWithoutFileIsRejectedLocally(t *testing.T) {
	backend := &fakeFileAPI{}
	c, _ := newTestController(t, backend, "T")

	err := c.Upload(context.Background(), "  ", "", false)
	require.ErrorIs(t, err, ErrNoFileSelected)
	assert.Zero(t, backend.uploadCalls)
}

func TestUploadSendsFileAndRefreshes(t *testing.T) {
	src := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o600))

	backend := &fakeFileAPI{listing: &api.FileListing{Total: 1}}
	c, _ := newTestController(t, backend, "T")

	require.NoError(t, c.Upload(context.Background(), src, "term report", false))
	assert.Equal(t, "report.txt", backend.uploadedName)
	assert.Equal(t, "term report", backend.uploadedDesc)
	assert.Equal(t, []byte("hello"), backend.uploadedBody)
	assert.False(t, backend.uploadedPublic)
	assert.Equal(t, 1, backend.listCalls, "successful upload refreshes the listing")
}

func TestPublicUploadSkipsRefresh(t *testing.T) {
	src := filepath.Join(t.TempDir(), "share.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

	backend := &fakeFileAPI{}
	c, _ := newTestController(t, backend, "")

	require.NoError(t, c.Upload(context.Background(), src, "", true))
	assert.True(t, backend.uploadedPublic)
	assert.Zero(t, backend.listCalls)
}

func TestUpdateWithNoChangesIsRejectedLocally(t *testing.T) {
	backend := &fakeFileAPI{}
	c, _ := newTestController(t, backend, "T")

	err := c.Update(context.Background(), 3, "", "   ")
	require.ErrorIs(t, err, ErrNothingToUpdate)
	assert.Zero(t, backend.updateCalls)
}

func TestUpdateDescriptionOnly(t *testing.T) {
	backend := &fakeFileAPI{}
	c, _ := newTestController(t, backend, "T")

	require.NoError(t, c.Update(context.Background(), 3, "", "new description"))
	require.Equal(t, 1, backend.updateCalls)
	require.NotNil(t, backend.updateParams.Description)
	assert.Equal(t, "new description", *backend.updateParams.Description)
	assert.Nil(t, backend.updateParams.Content)
	assert.Equal(t, 1, backend.listCalls)
}

func TestUpdateFileOnly(t *testing.T) {
	src := filepath.Join(t.TempDir(), "v2.txt")
	require.NoError(t, os.WriteFile(src, []byte("v2"), 0o600))

	backend := &fakeFileAPI{}
	c, _ := newTestController(t, backend, "T")

	require.NoError(t, c.Update(context.Background(), 3, src, ""))
	assert.Equal(t, "v2.txt", backend.updateParams.Filename)
	assert.Equal(t, []byte("v2"), backend.updateBody)
	assert.Nil(t, backend.updateParams.Description)
}

func TestDeleteDeclinedSendsNothing(t *testing.T) {
	backend := &fakeFileAPI{}
	c, out := newTestController(t, backend, "T")
	c.Confirm = func(string) bool { return false }

	require.NoError(t, c.Delete(context.Background(), 5))
	assert.Zero(t, backend.deleteCalls)
	assert.Contains(t, out.String(), "Canceled")
}

func TestDeleteConfirmedRemovesAndRefreshes(t *testing.T) {
	backend := &fakeFileAPI{}
	c, _ := newTestController(t, backend, "T")

	require.NoError(t, c.Delete(context.Background(), 5))
	assert.Equal(t, uint(5), backend.deletedID)
	assert.Equal(t, 1, backend.listCalls)
}

func TestDownloadPrefersExplicitName(t *testing.T) {
	backend := &fakeFileAPI{downloadBody: "payload", downloadSuggested: "server.bin"}
	c, _ := newTestController(t, backend, "T")

	dest, err := c.Download(context.Background(), 9, "mine.bin")
	require.NoError(t, err)
	assert.Equal(t, "mine.bin", filepath.Base(dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDownloadFallsBackToServerNameThenID(t *testing.T) {
	backend := &fakeFileAPI{downloadBody: "x", downloadSuggested: "suggested.txt"}
	c, _ := newTestController(t, backend, "T")

	dest, err := c.Download(context.Background(), 9, "")
	require.NoError(t, err)
	assert.Equal(t, "suggested.txt", filepath.Base(dest))

	backend.downloadSuggested = ""
	dest, err = c.Download(context.Background(), 9, "")
	require.NoError(t, err)
	assert.Equal(t, "file_9", filepath.Base(dest))
}

func TestDownloadLeavesNoTempFileOnFailure(t *testing.T) {
	backend := &fakeFileAPI{downloadErr: api.ErrUnavailable}
	dir := t.TempDir()
	var out bytes.Buffer
	c := New(backend, staticToken("T"), &out, dir)

	_, err := c.Download(context.Background(), 9, "")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBusyGuardRejectsReentrantAction(t *testing.T) {
	var g busyGuard

	release, err := g.acquire(ActionUpload)
	require.NoError(t, err)

	_, err = g.acquire(ActionUpload)
	require.ErrorIs(t, err, ErrBusy)

	// A different action is independent.
	release2, err := g.acquire(ActionDelete)
	require.NoError(t, err)
	release2()

	release()
	release3, err := g.acquire(ActionUpload)
	require.NoError(t, err)
	release3()
}
