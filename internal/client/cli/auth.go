package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"campusvault/internal/client/authform"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// confirmFn asks a yes/no question; anything but y/yes declines. Swappable in
// tests.
var confirmFn = func(reader *bufio.Reader, prompt string, w io.Writer) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Register prompts for the registration fields and submits the form. On
// success the user lands on the registration result page.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	next, err := a.forms.Register(ctx, authform.RegisterForm{
		Email:           email,
		Username:        username,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	a.Navigate(ctx, next)
	return nil
}

// Login prompts for credentials, authenticates, and moves to the files page.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	next, err := a.forms.Login(ctx, authform.LoginForm{Email: email, Password: password})
	if err != nil {
		return err
	}
	a.Navigate(ctx, next)
	return nil
}

// Logout asks for confirmation, clears the local session, and returns to the
// login page. Declining leaves the session untouched.
func (a *App) Logout(ctx context.Context) error {
	if !confirmFn(a.reader, "Sign out?", a.out) {
		return nil
	}
	next, err := a.forms.Logout(ctx)
	if err != nil {
		return err
	}
	a.Navigate(ctx, next)
	return nil
}
