// Package api is the REST transport for the campus vault backend. It layers
// uniform request decoration (bearer token, mirrored cookie, request id) and
// uniform response handling (envelope decoding, unauthorized logout) over
// net/http, so controllers never deal with raw responses.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"campusvault/internal/logging"

	"github.com/google/uuid"
)

const basePath = "/api/v1"

// SessionStore is the slice of the session contract the transport needs:
// reading the token for auth decoration and clearing it on 401.
type SessionStore interface {
	Token(ctx context.Context) string
	ClearSession(ctx context.Context) error
}

// Client performs JSON/multipart calls against the backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	sess    SessionStore
	log     logging.Logger

	// onSessionExpired is invoked once per unauthorized response, after the
	// session has been cleared. The navigation layer points it at the login
	// page.
	onSessionExpired func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client, typically one built
// on the session store's cookie jar.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a Client for the given base URL (scheme + host, no /api/v1).
func New(baseURL string, sess SessionStore, log logging.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 15 * time.Second},
		sess:    sess,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetSessionExpiredHook registers the redirect-to-login callback. It is wired
// late because the navigation layer is constructed after the transport.
func (c *Client) SetSessionExpiredHook(fn func()) {
	c.onSessionExpired = fn
}

// newRequest builds a request rooted at the API base path with the uniform
// headers applied. When authed is true and a token exists, the Authorization
// header is attached; the mirrored cookie travels via the client's jar.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, authed bool) (*http.Request, error) {
	u := c.baseURL.JoinPath(basePath, path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		if tok := c.sess.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// response is the decoded outcome of a call: HTTP status, headers, and the
// safely-parsed envelope.
type response struct {
	status int
	header http.Header
	env    *Envelope
}

// noBody reports a successful response that carried nothing (e.g. the 204
// answer to a delete).
func (r *response) noBody() bool {
	return r.status >= 200 && r.status < 300 && r.env.Empty
}

// do executes the request and normalizes the result. For authenticated calls
// an unauthorized status clears the session, fires the expiry hook, and
// surfaces ErrSessionExpired, uniformly for every call site.
func (c *Client) do(ctx context.Context, req *http.Request, authed bool) (*response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", req.Method, "url", req.URL.Path, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug(ctx, "request done",
		"method", req.Method, "url", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if authed && resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(ctx)
		return nil, ErrSessionExpired
	}

	return &response{
		status: resp.StatusCode,
		header: resp.Header,
		env:    DecodeSafely(body),
	}, nil
}

// expireSession implements the uniform unauthorized path: clear local
// identity first, then hand control to the navigation hook exactly once per
// offending response.
func (c *Client) expireSession(ctx context.Context) {
	if err := c.sess.ClearSession(ctx); err != nil {
		c.log.Error(ctx, "clear session", "err", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// Ping checks backend liveness.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/ping", nil, nil, "", false)
	if err != nil {
		return err
	}
	res, err := c.do(ctx, req, false)
	if err != nil {
		return err
	}
	if res.status != http.StatusOK {
		return newError(res.env, res.status, "ping failed")
	}
	return nil
}
