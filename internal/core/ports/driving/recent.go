package driving

import "context"

// RecentService tracks the pages the current user visited most recently.
// The list is bounded and namespaced per authenticated user; nothing is
// recorded while logged out.
type RecentService interface {
	// Record notes a page visit for the current user.
	Record(ctx context.Context, pageID int64) error

	// List returns the current user's recent page IDs, newest first.
	List(ctx context.Context) ([]int64, error)

	// Forget drops a deleted page from every user's list.
	Forget(ctx context.Context, pageID int64) error
}
