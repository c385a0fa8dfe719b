package driving

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// PageService exposes page queries and mutations to the UI layer.
// Queries are served through the tag-invalidated cache; mutations declare
// the tags they invalidate, which is the sole cache-coherence mechanism.
type PageService interface {
	// Tree returns the accessible pages as a forest of roots.
	// With myOnly set, only pages authored by the current user.
	Tree(ctx context.Context, myOnly bool) ([]*domain.Page, error)

	// Get fetches one page by numeric ID or slug.
	Get(ctx context.Context, idOrSlug string) (*domain.Page, error)

	// History lists a page's versions, newest first.
	History(ctx context.Context, pageID int64) ([]domain.PageVersion, error)

	// DiffVersions computes the positional line diff between two versions
	// of a page. Version ID zero on the older side means the empty text,
	// so a first version diffs as all additions.
	DiffVersions(ctx context.Context, pageID, olderID, newerID int64) ([]domain.DiffLine, error)

	// Collaborators lists a page's collaborators.
	Collaborators(ctx context.Context, pageID int64) ([]domain.Collaborator, error)

	// Likes returns the like count and current user's like state.
	Likes(ctx context.Context, pageID int64) (*domain.LikeStatus, error)

	// Popular returns the most liked accessible pages.
	Popular(ctx context.Context, limit int) ([]domain.Page, error)

	// Create creates a page.
	Create(ctx context.Context, input domain.CreatePageInput) (*domain.Page, error)

	// Update updates a page; the server snapshots the previous content.
	Update(ctx context.Context, id int64, input domain.UpdatePageInput) (*domain.Page, error)

	// Delete removes a page.
	Delete(ctx context.Context, id int64) error

	// Restore restores a historical version of a page.
	Restore(ctx context.Context, pageID, versionID int64) (*domain.Page, error)

	// AddCollaborator grants a user access to a page.
	AddCollaborator(ctx context.Context, pageID, userID int64, level domain.AccessLevel) error

	// Like records a like on a page by the current user.
	Like(ctx context.Context, pageID int64) error

	// Unlike removes the current user's like from a page.
	Unlike(ctx context.Context, pageID int64) error
}
