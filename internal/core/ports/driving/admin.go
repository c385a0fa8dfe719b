package driving

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// AdminService exposes the admin panel operations. Every call is gated
// server-side; the client only hides the panel for non-admins.
type AdminService interface {
	// Users lists every account.
	Users(ctx context.Context) ([]domain.User, error)

	// CollaboratorCandidates lists active users for the collaborator
	// picker. Available to any authenticated user.
	CollaboratorCandidates(ctx context.Context) ([]domain.UserRef, error)

	// Block deactivates an account.
	Block(ctx context.Context, userID int64) error

	// Unblock reactivates an account.
	Unblock(ctx context.Context, userID int64) error
}
