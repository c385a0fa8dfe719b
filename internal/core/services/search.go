package services

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

const opSearch = "search"

// Ensure SearchService implements the driving port.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs text searches through the cache so repeated queries
// for the same term hit the server once until a page mutation lands.
type SearchService struct {
	api   driven.WikiAPI
	cache *QueryCache
}

// NewSearchService creates a search service.
func NewSearchService(api driven.WikiAPI, cache *QueryCache) *SearchService {
	return &SearchService{api: api, cache: cache}
}

// Search returns matching pages with server-marked highlights.
// Results are tagged both "Search" and "Pages": any page mutation makes
// every cached result set stale.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	value, err := s.cache.Get(ctx,
		QueryKey{Op: opSearch, Param: query},
		StaticTags(TagSearch, TagPages),
		func(ctx context.Context) (any, error) {
			return s.api.Search(ctx, query)
		})
	if err != nil {
		return nil, err
	}
	return value.([]domain.SearchResult), nil
}
