// Package vault drives the file-vault screen: listing, upload, update,
// delete, and download. All state lives on the backend; the controller holds
// only the transient rendering of the most recent listing and replaces it
// wholesale on every successful fetch.
package vault

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"campusvault/internal/client/api"

	"github.com/fatih/color"
)

// The vault screen always shows the first page with a fixed size, matching
// the backend's default clamp.
const (
	firstPage = 1
	pageSize  = 20
)

var (
	// ErrNoFileSelected is the local rejection for an upload without a file.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrNothingToUpdate is the local rejection for an update that carries
	// neither a new file nor a description.
	ErrNothingToUpdate = errors.New("nothing to update")
)

// FileAPI is the slice of the transport the controller drives.
type FileAPI interface {
	ListFiles(ctx context.Context, page, size int) (*api.FileListing, error)
	UploadFile(ctx context.Context, filename string, content io.Reader, description string, public bool) (*api.UploadResult, error)
	UpdateFile(ctx context.Context, id uint, p api.UpdateFileParams) error
	DeleteFile(ctx context.Context, id uint) error
	DownloadFile(ctx context.Context, id uint) (io.ReadCloser, string, error)
}

// TokenReader answers the only session question the controller has:
// is anyone signed in.
type TokenReader interface {
	Token(ctx context.Context) string
}

// Controller orchestrates vault actions and re-renders on state changes.
type Controller struct {
	api          FileAPI
	sess         TokenReader
	out          io.Writer
	downloadsDir string
	guard        busyGuard

	// Confirm asks the user to approve a destructive action. Overridable in
	// tests; the default prompts on the terminal.
	Confirm func(prompt string) bool
}

func New(fileAPI FileAPI, sess TokenReader, out io.Writer, downloadsDir string) *Controller {
	return &Controller{
		api:          fileAPI,
		sess:         sess,
		out:          out,
		downloadsDir: downloadsDir,
		Confirm:      terminalConfirm,
	}
}

// terminalConfirm reads a y/n answer from stdin. Anything but y/yes declines.
func terminalConfirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (c *Controller) notice(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *Controller) failure(format string, args ...any) {
	color.New(color.FgRed).Fprintf(c.out, format+"\n", args...)
}

// List fetches and renders the first page of the vault. Without a token it
// renders the sign-in placeholder and never touches the network. Overlapping
// refreshes are prevented per-action; across different actions the last
// response to arrive wins the display.
func (c *Controller) List(ctx context.Context) error {
	release, err := c.guard.acquire(ActionRefresh)
	if err != nil {
		return err
	}
	defer release()

	if c.sess.Token(ctx) == "" {
		c.notice("Sign in to see your files.")
		return nil
	}

	listing, err := c.api.ListFiles(ctx, firstPage, pageSize)
	if err != nil {
		c.failure("Could not load files: %v", err)
		return err
	}

	c.renderListing(listing)
	return nil
}

// Upload validates that a file is selected and readable, then sends it.
// public routes to the anonymous endpoint; the authenticated mode refreshes
// the listing afterwards.
func (c *Controller) Upload(ctx context.Context, path, description string, public bool) error {
	release, err := c.guard.acquire(ActionUpload)
	if err != nil {
		return err
	}
	defer release()

	if strings.TrimSpace(path) == "" {
		c.failure("Select a file before uploading.")
		return ErrNoFileSelected
	}

	f, err := os.Open(path)
	if err != nil {
		c.failure("Cannot read %s: %v", path, err)
		return fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()

	res, err := c.api.UploadFile(ctx, filepath.Base(path), f, description, public)
	if err != nil {
		c.failure("Upload failed: %v", err)
		return err
	}

	if res.Filename != "" {
		c.notice("Uploaded %s (id %d).", res.Filename, res.FileID)
	} else {
		c.notice("Uploaded.")
	}

	if !public {
		return c.List(ctx)
	}
	return nil
}

// Update sends a partial change for one file. At least one of a new file or
// a non-empty description is required; otherwise the call is rejected
// locally and no request is sent.
func (c *Controller) Update(ctx context.Context, id uint, path, description string) error {
	release, err := c.guard.acquire(ActionUpdate)
	if err != nil {
		return err
	}
	defer release()

	description = strings.TrimSpace(description)
	if path == "" && description == "" {
		c.failure("Choose a new file or enter a description.")
		return ErrNothingToUpdate
	}

	var params api.UpdateFileParams
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			c.failure("Cannot read %s: %v", path, err)
			return fmt.Errorf("open update source: %w", err)
		}
		defer f.Close()
		params.Filename = filepath.Base(path)
		params.Content = f
	}
	if description != "" {
		params.Description = &description
	}

	if err := c.api.UpdateFile(ctx, id, params); err != nil {
		c.failure("Update failed: %v", err)
		return err
	}

	c.notice("Updated file %d.", id)
	return c.List(ctx)
}

// Delete asks for confirmation, then removes the file. A declined
// confirmation sends nothing. The backend answers 204, so an empty
// successful response is the success case.
func (c *Controller) Delete(ctx context.Context, id uint) error {
	release, err := c.guard.acquire(ActionDelete)
	if err != nil {
		return err
	}
	defer release()

	if !c.Confirm(fmt.Sprintf("Delete file %d?", id)) {
		c.notice("Canceled.")
		return nil
	}

	if err := c.api.DeleteFile(ctx, id); err != nil {
		c.failure("Delete failed: %v", err)
		return err
	}

	c.notice("Deleted file %d.", id)
	return c.List(ctx)
}

// Download streams the file into the downloads directory. The bytes land in
// a transient temp file first, which is released on every path: renamed into
// place on success, removed on failure. Returns the final path.
func (c *Controller) Download(ctx context.Context, id uint, filename string) (string, error) {
	release, err := c.guard.acquire(ActionDownload)
	if err != nil {
		return "", err
	}
	defer release()

	rc, suggested, err := c.api.DownloadFile(ctx, id)
	if err != nil {
		c.failure("Download failed: %v", err)
		return "", err
	}
	defer rc.Close()

	name := filename
	if name == "" {
		name = suggested
	}
	if name == "" {
		name = fmt.Sprintf("file_%d", id)
	}

	if err := os.MkdirAll(c.downloadsDir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.downloadsDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		c.failure("Download failed: %v", err)
		return "", fmt.Errorf("write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	dest := filepath.Join(c.downloadsDir, filepath.Base(name))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("place download: %w", err)
	}

	c.notice("Saved to %s.", dest)
	return dest, nil
}
