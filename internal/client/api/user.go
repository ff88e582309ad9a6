package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetProfile fetches the current account identity. This is also the auth
// gate's token validation call.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user/profile", nil, nil, "", true)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if !res.env.OK() {
		return nil, newError(res.env, res.status, "cannot load profile")
	}

	var p Profile
	if err := json.Unmarshal(res.env.Data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile changes username and, optionally, email.
func (c *Client) UpdateProfile(ctx context.Context, username, email string) (*Profile, error) {
	body, err := jsonBody(map[string]string{"username": username, "email": email})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/user/profile", nil, body, "application/json", true)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if !res.env.OK() {
		return nil, newError(res.env, res.status, "cannot update profile")
	}

	var p Profile
	if err := json.Unmarshal(res.env.Data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// ChangePassword swaps the account password. Success is a bare 204.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body, err := jsonBody(map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/user/password", nil, body, "application/json", true)
	if err != nil {
		return err
	}
	res, err := c.do(ctx, req, true)
	if err != nil {
		return err
	}
	if res.noBody() || res.env.OK() {
		return nil
	}
	return newError(res.env, res.status, "cannot change password")
}
