package domain

import "time"

// Page represents a single wiki page.
// It is the canonical representation used across the client.
type Page struct {
	// ID is the server-assigned numeric identifier.
	ID int64

	// Slug is the URL-friendly identifier derived from the title.
	// Both ID and Slug resolve to the same page on the server.
	Slug string

	// Title is the human-readable page title.
	Title string

	// Content is the raw Markdown body.
	Content string

	// IsPublic marks the page as readable without authentication.
	IsPublic bool

	// ParentID links to a parent page. Nil means the page is a root.
	ParentID *int64

	// Author is the user who created the page.
	Author UserRef

	// CreatedAt is when the page was created.
	CreatedAt time.Time

	// UpdatedAt is when the page was last modified.
	UpdatedAt time.Time

	// LikeCount is the number of likes, when the server includes it.
	LikeCount int

	// UserLiked reports whether the current user has liked the page,
	// when the server includes it.
	UserLiked bool

	// Children holds nested pages in tree-shaped responses.
	// It is nil for flat responses.
	Children []*Page
}

// UserRef is a lightweight reference to a user embedded in other records.
type UserRef struct {
	// ID is the user's numeric identifier.
	ID int64

	// Username is the display name.
	Username string

	// Email is included only where the server returns it
	// (collaborator listings, user pickers).
	Email string
}

// PageVersion is a full snapshot of a page at a point in time.
// Versions are complete copies, never deltas; diffs are computed on demand.
type PageVersion struct {
	// ID is the version's identifier.
	ID int64

	// PageID is the owning page.
	PageID int64

	// Author is the user who saved this version.
	Author UserRef

	// Title is the page title at snapshot time.
	Title string

	// Text is the full Markdown body at snapshot time.
	Text string

	// VersionComment is an optional free-text note. Nil when absent.
	VersionComment *string

	// CreatedAt is when the snapshot was taken.
	// History listings are ordered by this, newest first.
	CreatedAt time.Time
}

// AccessLevel is a collaborator's granted permission scope.
type AccessLevel string

const (
	// AccessRead grants read-only access to a private page.
	AccessRead AccessLevel = "read"

	// AccessWrite grants edit access, including creating child pages.
	AccessWrite AccessLevel = "write"
)

// Valid reports whether the access level is one the server accepts.
func (a AccessLevel) Valid() bool {
	return a == AccessRead || a == AccessWrite
}

// Collaborator grants a user access to a page.
// A page's author is never listed as a collaborator; ownership supersedes
// any access-level entry.
type Collaborator struct {
	// ID is the collaborator record's identifier.
	ID int64

	// PageID is the page this grant applies to.
	PageID int64

	// User is the user receiving access.
	User UserRef

	// AccessLevel is read or write.
	AccessLevel AccessLevel

	// CreatedAt is when the grant was created.
	CreatedAt time.Time
}

// LikeStatus reports like state for a page as seen by the current user.
type LikeStatus struct {
	// PageID is the page the status applies to.
	PageID int64

	// LikeCount is the total number of likes.
	LikeCount int

	// UserLiked reports whether the current user has liked the page.
	UserLiked bool
}

// CreatePageInput is the payload for creating a page.
type CreatePageInput struct {
	Title    string
	Content  string
	ParentID *int64
	IsPublic bool
}

// UpdatePageInput is the payload for updating a page.
// The server snapshots the previous content as a new version.
type UpdatePageInput struct {
	Title          string
	Content        string
	VersionComment *string
	// IsPublic updates visibility only when non-nil.
	IsPublic *bool
}
