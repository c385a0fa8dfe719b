package driving

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// SessionService manages the authenticated principal and its credential.
type SessionService interface {
	// Login authenticates and persists the bearer token on success.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Register creates a new account. It does not log in.
	Register(ctx context.Context, username, email, password string) error

	// Logout clears the in-memory session and the persisted token.
	Logout() error

	// Current returns a snapshot of the session state.
	Current() domain.Session

	// Resume attempts to restore a session from a persisted token at
	// startup. It resolves the current user once; failure clears the
	// token rather than retrying.
	Resume(ctx context.Context) error
}
