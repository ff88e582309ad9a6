package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"campusvault/internal/client/api"
	"campusvault/internal/client/authform"
	"campusvault/internal/client/config"
	"campusvault/internal/client/gate"
	"campusvault/internal/client/session"
	"campusvault/internal/client/timetable"
	"campusvault/internal/client/vault"
	"campusvault/internal/logging"
)

// App wires the session store, transport, and screen controllers behind the
// command surface. One App lives for the whole process; the REPL and the
// one-shot cobra commands both dispatch into it.
type App struct {
	config *config.Config
	log    logging.Logger
	sess   *session.SQLiteStore
	api    *api.Client
	gate   *gate.Gate
	forms  *authform.Forms
	vault  *vault.Controller

	out    io.Writer
	reader *bufio.Reader

	// path is the page the user is currently on, in the site's route terms.
	path string

	// day is the timetable day being viewed, 0..6 starting at Sunday.
	day int
}

// NewApp builds the full client from configuration. The cookie jar of the
// session store doubles as the HTTP client's jar so the token cookie rides
// along with every request, matching the bearer header.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	sess, err := session.NewSQLiteStore(session.DefaultDBPath(cfg.StateDir), base)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
		Jar:     sess.Jar(),
	}

	apiClient, err := api.New(cfg.APIBaseURL, sess, log, api.WithHTTPClient(httpClient))
	if err != nil {
		sess.Close()
		return nil, err
	}

	app := &App{
		config: cfg,
		log:    log,
		sess:   sess,
		api:    apiClient,
		out:    os.Stdout,
		reader: bufio.NewReader(os.Stdin),
		path:   gate.LoginPath,
		day:    timetable.Today(time.Now()),
	}

	app.gate = gate.New(apiClient, sess, log)
	app.forms = authform.New(apiClient, sess, app.out, log)
	app.vault = vault.New(apiClient, sess, app.out, cfg.DownloadsDir)

	// An expired session anywhere in the transport drops the user back on
	// the login page.
	apiClient.SetSessionExpiredHook(func() {
		app.path = gate.LoginPath
		fmt.Fprintln(app.out, "Session expired, please sign in again.")
	})

	return app, nil
}

func (a *App) Close() error {
	return a.sess.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.sess.Token(ctx) != ""
}

// status renders the prompt suffix: the signed-in email and current page.
func (a *App) status(ctx context.Context) string {
	if email := a.sess.Email(ctx); email != "" {
		return fmt.Sprintf("(%s %s)", email, a.path)
	}
	return fmt.Sprintf("(%s)", a.path)
}

// Run starts the interactive shell and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	fmt.Fprintln(a.out, "Campus vault CLI (type 'help' for commands)")
	a.Navigate(ctx, a.path)
	runREPL(ctx, a, func() string { return a.status(ctx) }, bufio.NewScanner(os.Stdin), a.out)
}

// Ping checks backend liveness with a short deadline.
func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return a.api.Ping(ctx)
}
