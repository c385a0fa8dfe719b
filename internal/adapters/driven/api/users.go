package api

import (
	"context"
	"strconv"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
)

// Ensure Client implements the user-management port.
var _ driven.UsersAPI = (*Client)(nil)

// ListUsers returns active users, for picking collaborators.
func (c *Client) ListUsers(ctx context.Context) ([]domain.UserRef, error) {
	var payload []userRefPayload
	if err := c.get(ctx, "/api/users/list", nil, &payload); err != nil {
		return nil, err
	}
	users := make([]domain.UserRef, 0, len(payload))
	for _, u := range payload {
		users = append(users, u.toDomain())
	}
	return users, nil
}

// AdminListUsers returns every account, blocked ones included.
func (c *Client) AdminListUsers(ctx context.Context) ([]domain.User, error) {
	var payload []userPayload
	if err := c.get(ctx, "/api/users/admin/users", nil, &payload); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(payload))
	for _, u := range payload {
		users = append(users, u.toDomain())
	}
	return users, nil
}

// BlockUser deactivates an account.
func (c *Client) BlockUser(ctx context.Context, userID int64) error {
	return c.put(ctx, adminUserPath(userID)+"/block", nil, nil)
}

// UnblockUser reactivates an account.
func (c *Client) UnblockUser(ctx context.Context, userID int64) error {
	return c.put(ctx, adminUserPath(userID)+"/unblock", nil, nil)
}

func adminUserPath(userID int64) string {
	return "/api/users/admin/users/" + strconv.FormatInt(userID, 10)
}
