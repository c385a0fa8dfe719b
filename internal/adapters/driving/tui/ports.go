// Package tui provides an interactive terminal user interface for the wiki.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session manages authentication and identity.
	Session driving.SessionService

	// Pages manages the page tree, versions, collaborators and likes.
	Pages driving.PageService

	// Search provides full-text search.
	Search driving.SearchService

	// Admin manages user accounts. Optional; the admin view is hidden
	// for non-admin users anyway.
	Admin driving.AdminService

	// Recent tracks locally visited pages. Optional.
	Recent driving.RecentService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	session driving.SessionService,
	pages driving.PageService,
	search driving.SearchService,
) *Ports {
	return &Ports{
		Session: session,
		Pages:   pages,
		Search:  search,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Pages == nil {
		return ErrMissingPageService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
