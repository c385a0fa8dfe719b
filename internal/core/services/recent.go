package services

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

// Ensure RecentService implements the driving port.
var _ driving.RecentService = (*RecentService)(nil)

// RecentService records page visits for the authenticated user.
// Guests are never tracked.
type RecentService struct {
	store   driven.RecentStore
	session driving.SessionService
}

// NewRecentService creates a recent-pages service.
func NewRecentService(store driven.RecentStore, session driving.SessionService) *RecentService {
	return &RecentService{store: store, session: session}
}

// Record notes a page visit for the current user. Visits while logged
// out are silently dropped.
func (s *RecentService) Record(ctx context.Context, pageID int64) error {
	sess := s.session.Current()
	if !sess.Authenticated() {
		return nil
	}
	return s.store.Touch(ctx, sess.User.ID, pageID)
}

// List returns the current user's recent page IDs, newest first.
// An empty list is returned while logged out.
func (s *RecentService) List(ctx context.Context) ([]int64, error) {
	sess := s.session.Current()
	if !sess.Authenticated() {
		return nil, nil
	}
	return s.store.List(ctx, sess.User.ID)
}

// Forget drops a deleted page from every user's list, so the recent view
// never offers a page that no longer exists.
func (s *RecentService) Forget(ctx context.Context, pageID int64) error {
	return s.store.Forget(ctx, pageID)
}
