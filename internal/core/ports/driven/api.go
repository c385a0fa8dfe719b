package driven

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// WikiAPI is the remote wiki server's page-facing contract.
// The HTTP adapter implements it; core services only see this interface.
// All calls attach the current bearer token uniformly, and an unauthorized
// response clears the session as a side effect inside the adapter.
type WikiAPI interface {
	// ListPages returns the accessible pages as a nested forest of roots.
	// With myOnly set, only pages authored by the current user are returned.
	ListPages(ctx context.Context, myOnly bool) ([]domain.Page, error)

	// GetPage fetches one page by numeric ID or slug.
	GetPage(ctx context.Context, idOrSlug string) (*domain.Page, error)

	// CreatePage creates a page and returns the server's record.
	CreatePage(ctx context.Context, input domain.CreatePageInput) (*domain.Page, error)

	// UpdatePage updates a page. The server snapshots the previous
	// content as a new version before applying the change.
	UpdatePage(ctx context.Context, id int64, input domain.UpdatePageInput) (*domain.Page, error)

	// DeletePage removes a page.
	DeletePage(ctx context.Context, id int64) error

	// GetHistory lists a page's versions, newest first.
	GetHistory(ctx context.Context, pageID int64) ([]domain.PageVersion, error)

	// RestoreVersion restores a historical version. The restore itself
	// creates a new version of the pre-restore content.
	RestoreVersion(ctx context.Context, pageID, versionID int64) (*domain.Page, error)

	// GetCollaborators lists a page's collaborators.
	GetCollaborators(ctx context.Context, pageID int64) ([]domain.Collaborator, error)

	// AddCollaborator grants a user access to a page. Adding an existing
	// collaborator updates their access level.
	AddCollaborator(ctx context.Context, pageID, userID int64, level domain.AccessLevel) (*domain.Collaborator, error)

	// GetLikes returns the like count and the current user's like state.
	GetLikes(ctx context.Context, pageID int64) (*domain.LikeStatus, error)

	// LikePage records a like by the current user.
	LikePage(ctx context.Context, pageID int64) error

	// UnlikePage removes the current user's like.
	UnlikePage(ctx context.Context, pageID int64) error

	// PopularPages returns the most liked accessible pages.
	PopularPages(ctx context.Context, limit int) ([]domain.Page, error)

	// Search runs a text search over accessible pages.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// AuthAPI is the remote server's identity contract.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates a new account.
	Register(ctx context.Context, username, email, password string) error

	// CurrentUser resolves the user behind the current bearer token.
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// UsersAPI exposes user listings and the admin panel operations.
type UsersAPI interface {
	// ListUsers returns active users, for picking collaborators.
	ListUsers(ctx context.Context) ([]domain.UserRef, error)

	// AdminListUsers returns every account. Admin only.
	AdminListUsers(ctx context.Context) ([]domain.User, error)

	// BlockUser deactivates an account. Admin only.
	BlockUser(ctx context.Context, userID int64) error

	// UnblockUser reactivates an account. Admin only.
	UnblockUser(ctx context.Context, userID int64) error
}
