package cli

import (
	"context"
	"fmt"

	"campusvault/internal/client/timetable"
)

// Navigate moves the user to a page, running the auth gate first. A denied
// gated page lands on the login page instead; the gate has already cleared
// any dead session by then, so following the redirect cannot loop.
func (a *App) Navigate(ctx context.Context, path string) {
	res := a.gate.Check(ctx, path)
	if !res.Allowed {
		path = res.RedirectTo
	}
	a.path = path
	a.renderPage(ctx, path)
}

// renderPage draws the content of one page.
func (a *App) renderPage(ctx context.Context, path string) {
	switch path {
	case "/", "/login":
		if a.isLoggedIn(ctx) {
			fmt.Fprintln(a.out, "Signed in. Type 'home' for your files or 'logout' to leave.")
		} else {
			fmt.Fprintln(a.out, "Welcome. Type 'login' to sign in or 'register' to create an account.")
		}
	case "/register":
		fmt.Fprintln(a.out, "Create an account: type 'register'.")
	case "/register_result":
		fmt.Fprintln(a.out, "Registration received. Sign in with 'login' once your account is active.")
	case "/index":
		_ = a.vault.List(ctx)
	case "/timetable":
		timetable.Render(a.out, a.day)
	default:
		fmt.Fprintf(a.out, "No such page: %s\n", path)
	}
}
