package api

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
)

// Ensure Client implements the identity port.
var _ driven.AuthAPI = (*Client)(nil)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.post(ctx, "/api/auth/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates a new account. The new user still has to log in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	req := registerRequest{Username: username, Email: email, Password: password}
	return c.post(ctx, "/api/auth/register", req, nil)
}

// CurrentUser resolves the user behind the current bearer token.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var payload userPayload
	if err := c.get(ctx, "/api/users/me", nil, &payload); err != nil {
		return nil, err
	}
	user := payload.toDomain()
	// The endpoint only answers for live accounts.
	user.IsActive = true
	return &user, nil
}
