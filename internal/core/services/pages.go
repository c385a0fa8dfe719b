package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
	"github.com/Sovatiano/wiki-app/internal/logger"
)

// Query operation kinds, the first half of a QueryKey.
const (
	opTree          = "pages.tree"
	opPage          = "pages.get"
	opHistory       = "pages.history"
	opCollaborators = "pages.collaborators"
	opLikes         = "pages.likes"
	opPopular       = "pages.popular"
)

// Ensure PageService implements the driving port.
var _ driving.PageService = (*PageService)(nil)

// PageService serves page queries through the tag-invalidated cache and
// routes mutations to the API, invalidating the affected tags on success.
type PageService struct {
	api   driven.WikiAPI
	cache *QueryCache
}

// NewPageService creates a page service backed by the given API and cache.
func NewPageService(api driven.WikiAPI, cache *QueryCache) *PageService {
	return &PageService{api: api, cache: cache}
}

// Cache exposes the underlying query cache so views can subscribe to
// refetches of the keys this service populates.
func (s *PageService) Cache() *QueryCache {
	return s.cache
}

// TreeKey is the cache key for the page forest.
func TreeKey(myOnly bool) QueryKey {
	return QueryKey{Op: opTree, Param: strconv.FormatBool(myOnly)}
}

// PageKey is the cache key for a single page lookup.
func PageKey(idOrSlug string) QueryKey {
	return QueryKey{Op: opPage, Param: idOrSlug}
}

// Tree returns the accessible pages as a forest. The server already
// nests children; the forest is rebuilt client-side from the flattened
// records so the tree invariant holds even for flat responses.
func (s *PageService) Tree(ctx context.Context, myOnly bool) ([]*domain.Page, error) {
	value, err := s.cache.Get(ctx, TreeKey(myOnly),
		StaticTags(TagPages),
		func(ctx context.Context) (any, error) {
			roots, err := s.api.ListPages(ctx, myOnly)
			if err != nil {
				return nil, err
			}
			return rebuildForest(roots), nil
		})
	if err != nil {
		return nil, err
	}
	return value.([]*domain.Page), nil
}

// Get fetches one page by numeric ID or slug. Both spellings resolve to
// the same server resource; the entry is tagged with the numeric ID the
// server returns, so either cached form is invalidated together.
func (s *PageService) Get(ctx context.Context, idOrSlug string) (*domain.Page, error) {
	value, err := s.cache.Get(ctx, PageKey(idOrSlug),
		func(v any) []string {
			return []string{TagPage(v.(*domain.Page).ID)}
		},
		func(ctx context.Context) (any, error) {
			return s.api.GetPage(ctx, idOrSlug)
		})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Page), nil
}

// History lists a page's versions, newest first.
func (s *PageService) History(ctx context.Context, pageID int64) ([]domain.PageVersion, error) {
	value, err := s.cache.Get(ctx,
		QueryKey{Op: opHistory, Param: strconv.FormatInt(pageID, 10)},
		StaticTags(TagHistory(pageID)),
		func(ctx context.Context) (any, error) {
			return s.api.GetHistory(ctx, pageID)
		})
	if err != nil {
		return nil, err
	}
	return value.([]domain.PageVersion), nil
}

// DiffVersions resolves two versions from the page's history and computes
// the positional line diff between them. An older ID of zero stands for
// the empty text, so the diff of a first version is all additions.
func (s *PageService) DiffVersions(ctx context.Context, pageID, olderID, newerID int64) ([]domain.DiffLine, error) {
	versions, err := s.History(ctx, pageID)
	if err != nil {
		return nil, err
	}

	var older, newer string
	newerFound := false
	olderFound := olderID == 0
	for _, v := range versions {
		if v.ID == newerID {
			newer = v.Text
			newerFound = true
		}
		if olderID != 0 && v.ID == olderID {
			older = v.Text
			olderFound = true
		}
	}
	if !newerFound {
		return nil, fmt.Errorf("version %d: %w", newerID, domain.ErrNotFound)
	}
	if !olderFound {
		return nil, fmt.Errorf("version %d: %w", olderID, domain.ErrNotFound)
	}

	return domain.DiffLines(older, newer), nil
}

// Collaborators lists a page's collaborators.
func (s *PageService) Collaborators(ctx context.Context, pageID int64) ([]domain.Collaborator, error) {
	value, err := s.cache.Get(ctx,
		QueryKey{Op: opCollaborators, Param: strconv.FormatInt(pageID, 10)},
		StaticTags(TagCollaborators(pageID)),
		func(ctx context.Context) (any, error) {
			return s.api.GetCollaborators(ctx, pageID)
		})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Collaborator), nil
}

// Likes returns the like status of a page for the current user.
func (s *PageService) Likes(ctx context.Context, pageID int64) (*domain.LikeStatus, error) {
	value, err := s.cache.Get(ctx,
		QueryKey{Op: opLikes, Param: strconv.FormatInt(pageID, 10)},
		StaticTags(TagLikes(pageID)),
		func(ctx context.Context) (any, error) {
			return s.api.GetLikes(ctx, pageID)
		})
	if err != nil {
		return nil, err
	}
	return value.(*domain.LikeStatus), nil
}

// Popular returns the most liked accessible pages.
func (s *PageService) Popular(ctx context.Context, limit int) ([]domain.Page, error) {
	value, err := s.cache.Get(ctx,
		QueryKey{Op: opPopular, Param: strconv.Itoa(limit)},
		StaticTags(TagPages),
		func(ctx context.Context) (any, error) {
			return s.api.PopularPages(ctx, limit)
		})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Page), nil
}

// Create creates a page and invalidates the page listings.
func (s *PageService) Create(ctx context.Context, input domain.CreatePageInput) (*domain.Page, error) {
	page, err := s.api.CreatePage(ctx, input)
	if err != nil {
		return nil, err
	}
	logger.Debug("created page %d (%s)", page.ID, page.Slug)
	s.cache.Invalidate(ctx, TagPages)
	return page, nil
}

// Update updates a page and invalidates the page plus the listings. The
// server recorded a new version, so the history tag is invalidated too.
func (s *PageService) Update(ctx context.Context, id int64, input domain.UpdatePageInput) (*domain.Page, error) {
	page, err := s.api.UpdatePage(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, TagPage(id), TagPages, TagHistory(id))
	return page, nil
}

// Delete removes a page and invalidates the page plus the listings.
func (s *PageService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeletePage(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, TagPage(id), TagPages)
	return nil
}

// Restore restores a historical version; the restore creates a version of
// its own, so history is invalidated alongside the page.
func (s *PageService) Restore(ctx context.Context, pageID, versionID int64) (*domain.Page, error) {
	page, err := s.api.RestoreVersion(ctx, pageID, versionID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, TagPage(pageID), TagPages, TagHistory(pageID))
	return page, nil
}

// AddCollaborator grants access and invalidates the page's collaborator
// list and the page itself.
func (s *PageService) AddCollaborator(ctx context.Context, pageID, userID int64, level domain.AccessLevel) error {
	if !level.Valid() {
		return fmt.Errorf("access level %q: %w", level, domain.ErrValidation)
	}
	if _, err := s.api.AddCollaborator(ctx, pageID, userID, level); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, TagCollaborators(pageID), TagPage(pageID))
	return nil
}

// Like records a like. Listings carry like counts, so they go stale too.
func (s *PageService) Like(ctx context.Context, pageID int64) error {
	if err := s.api.LikePage(ctx, pageID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, TagLikes(pageID), TagPage(pageID), TagPages)
	return nil
}

// Unlike removes the current user's like.
func (s *PageService) Unlike(ctx context.Context, pageID int64) error {
	if err := s.api.UnlikePage(ctx, pageID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, TagLikes(pageID), TagPage(pageID), TagPages)
	return nil
}

// rebuildForest flattens a server-nested page list and rebuilds it with
// the tree builder, normalising orphan handling and child ordering.
func rebuildForest(roots []domain.Page) []*domain.Page {
	var flat []domain.Page
	var walk func(p domain.Page)
	walk = func(p domain.Page) {
		children := p.Children
		p.Children = nil
		flat = append(flat, p)
		for _, c := range children {
			if c != nil {
				walk(*c)
			}
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return domain.BuildTree(flat)
}
