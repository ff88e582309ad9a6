package cli

import (
	"context"
	"fmt"
	"strconv"
)

// List shows the vault, routed through the gate like a page load.
func (a *App) List(ctx context.Context) error {
	a.Navigate(ctx, "/index")
	return nil
}

// Upload sends a local file to the vault.
func (a *App) Upload(ctx context.Context, path, description string, public bool) error {
	return a.vault.Upload(ctx, path, description, public)
}

// Update replaces a file's content and/or description.
func (a *App) Update(ctx context.Context, id uint, path, description string) error {
	return a.vault.Update(ctx, id, path, description)
}

// Delete removes a file after confirmation.
func (a *App) Delete(ctx context.Context, id uint) error {
	return a.vault.Delete(ctx, id)
}

// Download saves a file into the downloads directory.
func (a *App) Download(ctx context.Context, id uint, filename string) error {
	_, err := a.vault.Download(ctx, id, filename)
	return err
}

// parseID turns a user-typed file id into the API's id type.
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file id %q", s)
	}
	return uint(id), nil
}
