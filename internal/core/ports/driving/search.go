package driving

import (
	"context"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// SearchService runs text searches against the server.
type SearchService interface {
	// Search returns matching pages with server-marked highlights.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}
