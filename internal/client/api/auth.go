package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// RegisterRequest matches the backend's registration binding. The backend
// wants the confirmation echoed under confirmed_password.
type RegisterRequest struct {
	Email             string `json:"email"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	ConfirmedPassword string `json:"confirmed_password"`
}

// Profile is the account identity returned by /user/profile and embedded in
// the login payload.
type Profile struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// LoginResult is the data payload of a successful login.
type LoginResult struct {
	Token   string  `json:"token"`
	Expires int64   `json:"expires"`
	User    Profile `json:"user"`
}

func jsonBody(v any) (*bytes.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// Register creates a new account. Field-level validation is the caller's job;
// this only reports what the backend answered.
func (c *Client) Register(ctx context.Context, r RegisterRequest) error {
	body, err := jsonBody(r)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", nil, body, "application/json", false)
	if err != nil {
		return err
	}
	res, err := c.do(ctx, req, false)
	if err != nil {
		return err
	}
	if !res.env.OK() {
		return newError(res.env, res.status, "registration failed")
	}
	return nil
}

// Login authenticates and returns the token payload. A response that is not
// JSON (by content type) is treated as an error even on HTTP 200, mirroring
// the strictness of the original login flow.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", nil, body, "application/json", false)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, req, false)
	if err != nil {
		return nil, err
	}

	if ct := res.header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, &Error{Code: res.status, Message: "server returned non-JSON response"}
	}
	if !res.env.OK() {
		return nil, newError(res.env, res.status, "login failed")
	}

	var out LoginResult
	if len(res.env.Data) > 0 {
		if err := json.Unmarshal(res.env.Data, &out); err != nil {
			return nil, fmt.Errorf("decode login payload: %w", err)
		}
	}
	return &out, nil
}
