package cli

import (
	"context"
	"fmt"
	"os"
)

// Profile shows the signed-in account.
func (a *App) Profile(ctx context.Context) error {
	prof, err := a.api.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load profile: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "ID:       %d\nUsername: %s\nEmail:    %s\n", prof.ID, prof.Username, prof.Email)
	return nil
}

// UpdateProfile changes the username and/or email. Empty fields keep their
// current value by resubmitting it.
func (a *App) UpdateProfile(ctx context.Context) error {
	current, err := a.api.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load profile: %v\n", err)
		return err
	}

	username, err := getSimpleText(a.reader, fmt.Sprintf("New username (blank keeps %q)", current.Username), os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("New email (blank keeps %q)", current.Email), os.Stdout)
	if err != nil {
		return err
	}

	if username == "" {
		username = current.Username
	}
	if email == "" {
		email = current.Email
	}

	prof, err := a.api.UpdateProfile(ctx, username, email)
	if err != nil {
		fmt.Fprintf(a.out, "Update failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", prof.Username, prof.Email)
	return nil
}

// ChangePassword asks for the old and new password and submits the change.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPw, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	newPw, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}
	if newPw != confirm {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return fmt.Errorf("password confirmation mismatch")
	}

	if err := a.api.ChangePassword(ctx, oldPw, newPw); err != nil {
		fmt.Fprintf(a.out, "Password change failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
