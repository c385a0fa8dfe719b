package services

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

const (
	opUsers      = "users.admin"
	opCandidates = "users.list"
)

// Ensure AdminService implements the driving port.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService serves the user management panel. Authorization lives on
// the server; the client merely hides the panel from non-admins.
type AdminService struct {
	api   driven.UsersAPI
	cache *QueryCache
}

// NewAdminService creates an admin service.
func NewAdminService(api driven.UsersAPI, cache *QueryCache) *AdminService {
	return &AdminService{api: api, cache: cache}
}

// Users lists every account.
func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	value, err := s.cache.Get(ctx,
		QueryKey{Op: opUsers},
		StaticTags(TagUsers),
		func(ctx context.Context) (any, error) {
			return s.api.AdminListUsers(ctx)
		})
	if err != nil {
		return nil, err
	}
	return value.([]domain.User), nil
}

// CollaboratorCandidates lists active users for the collaborator picker.
func (s *AdminService) CollaboratorCandidates(ctx context.Context) ([]domain.UserRef, error) {
	value, err := s.cache.Get(ctx,
		QueryKey{Op: opCandidates},
		StaticTags(TagUsers),
		func(ctx context.Context) (any, error) {
			return s.api.ListUsers(ctx)
		})
	if err != nil {
		return nil, err
	}
	return value.([]domain.UserRef), nil
}

// Block deactivates an account and invalidates user listings.
func (s *AdminService) Block(ctx context.Context, userID int64) error {
	if err := s.api.BlockUser(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, TagUsers)
	return nil
}

// Unblock reactivates an account and invalidates user listings.
func (s *AdminService) Unblock(ctx context.Context, userID int64) error {
	if err := s.api.UnblockUser(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, TagUsers)
	return nil
}
