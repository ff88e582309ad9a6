package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS session (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const (
	keyToken = "token"
	keyEmail = "email"

	cookieName = "token"
)

// SQLiteStore implements Store backed by a SQLite database plus an in-process
// cookie jar scoped to the API origin.
type SQLiteStore struct {
	db      *sql.DB
	jar     *cookiejar.Jar
	apiBase *url.URL
}

// DefaultDBPath returns the default database path inside stateDir.
func DefaultDBPath(stateDir string) string {
	return filepath.Join(stateDir, "session.db")
}

// NewSQLiteStore opens (or creates) the session database at dbPath and binds
// the cookie mirror to apiBase (scheme + host of the backend).
func NewSQLiteStore(dbPath string, apiBase *url.URL) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &SQLiteStore{db: db, jar: jar, apiBase: apiBase}, nil
}

// Jar exposes the cookie jar so the HTTP client can be built on top of it.
func (s *SQLiteStore) Jar() http.CookieJar {
	return s.jar
}

func (s *SQLiteStore) get(ctx context.Context, key string) string {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key=?`, key).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}

// Token prefers the persisted value and falls back to the mirrored cookie.
func (s *SQLiteStore) Token(ctx context.Context) string {
	if tok := s.get(ctx, keyToken); tok != "" {
		return tok
	}
	for _, c := range s.jar.Cookies(s.apiBase) {
		if c.Name == cookieName && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

func (s *SQLiteStore) Email(ctx context.Context) string {
	return s.get(ctx, keyEmail)
}

// SetSession persists both identity keys and mirrors the token cookie with a
// root path and relaxed same-site policy, matching what the web client sets.
func (s *SQLiteStore) SetSession(ctx context.Context, token, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for k, v := range map[string]string{keyToken: token, keyEmail: email} {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO session(key, value) VALUES(?, ?)`, k, v); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.jar.SetCookies(s.apiBase, []*http.Cookie{{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}})
	return nil
}

// ClearSession deletes every identity key and expires the cookie immediately.
// Safe to call when nothing is stored.
func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("clear session: %w", err)
	}

	s.jar.SetCookies(s.apiBase, []*http.Cookie{{
		Name:   cookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
