// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the username/password form.
	ViewLogin ViewType = iota
	// ViewMenu is the main navigation menu.
	ViewMenu
	// ViewTree is the page tree browser.
	ViewTree
	// ViewPage shows one page's rendered content.
	ViewPage
	// ViewEditor is the create/edit form.
	ViewEditor
	// ViewHistory lists a page's versions and renders diffs.
	ViewHistory
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewAdmin is the user management panel.
	ViewAdmin
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewMenu:
		return "menu"
	case ViewTree:
		return "tree"
	case ViewPage:
		return "page"
	case ViewEditor:
		return "editor"
	case ViewHistory:
		return "history"
	case ViewSearch:
		return "search"
	case ViewAdmin:
		return "admin"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LoginCompleted carries the outcome of a login attempt.
type LoginCompleted struct {
	User *domain.User
	Err  error
}

// SessionEnded signals the user logged out or the token was rejected.
type SessionEnded struct{}

// TreeLoaded carries the page forest from the service.
type TreeLoaded struct {
	Roots  []*domain.Page
	MyOnly bool
	Err    error
}

// PageSelected signals a page was chosen for the page view.
type PageSelected struct {
	ID int64
	// Slug is used when the ID is unknown, e.g. from search results.
	Slug string
}

// PageLoaded carries one page's full record. Gen ties the completion to
// the page-view generation that requested it; stale completions are
// dropped.
type PageLoaded struct {
	Gen  int
	Page *domain.Page
	Err  error
}

// CollaboratorsLoaded carries a page's collaborator list.
type CollaboratorsLoaded struct {
	Gen           int
	PageID        int64
	Collaborators []domain.Collaborator
	Err           error
}

// LikesLoaded carries a page's like status.
type LikesLoaded struct {
	Gen    int
	Status *domain.LikeStatus
	Err    error
}

// LikeToggled signals a like or unlike completed.
type LikeToggled struct {
	PageID int64
	Err    error
}

// EditRequested opens the editor for an existing page, or a new page
// when Page is nil.
type EditRequested struct {
	Page *domain.Page
	// ParentID is set when creating a child page.
	ParentID *int64
}

// PageSaved signals a create or update completed.
type PageSaved struct {
	Page *domain.Page
	Err  error
}

// PageDeleted signals a delete completed.
type PageDeleted struct {
	PageID int64
	Err    error
}

// HistoryRequested opens the history view for a page.
type HistoryRequested struct {
	PageID int64
	Title  string
}

// HistoryLoaded carries a page's version list, newest first.
type HistoryLoaded struct {
	PageID   int64
	Versions []domain.PageVersion
	Err      error
}

// DiffComputed carries the line diff between two versions.
type DiffComputed struct {
	OlderID int64
	NewerID int64
	Lines   []domain.DiffLine
	Err     error
}

// VersionRestored signals a restore completed.
type VersionRestored struct {
	Page *domain.Page
	Err  error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// UsersLoaded carries the admin user list.
type UsersLoaded struct {
	Users []domain.User
	Err   error
}

// UserBlockToggled signals a block or unblock completed.
type UserBlockToggled struct {
	UserID int64
	Err    error
}
