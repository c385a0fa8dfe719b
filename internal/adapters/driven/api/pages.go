package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
)

// Ensure Client implements the page-facing port.
var _ driven.WikiAPI = (*Client)(nil)

// ListPages returns the accessible pages as a nested forest.
func (c *Client) ListPages(ctx context.Context, myOnly bool) ([]domain.Page, error) {
	var query url.Values
	if myOnly {
		query = url.Values{"my_only": {"true"}}
	}
	var payload []pagePayload
	if err := c.get(ctx, "/api/pages/", query, &payload); err != nil {
		return nil, err
	}
	return toPages(payload), nil
}

// GetPage fetches one page by numeric ID or slug.
func (c *Client) GetPage(ctx context.Context, idOrSlug string) (*domain.Page, error) {
	var payload pagePayload
	if err := c.get(ctx, "/api/pages/"+url.PathEscape(idOrSlug), nil, &payload); err != nil {
		return nil, err
	}
	page := payload.toDomain()
	return &page, nil
}

// CreatePage creates a page.
func (c *Client) CreatePage(ctx context.Context, input domain.CreatePageInput) (*domain.Page, error) {
	req := createPageRequest{
		Title:    input.Title,
		Content:  input.Content,
		ParentID: input.ParentID,
		IsPublic: input.IsPublic,
	}
	var payload pagePayload
	if err := c.post(ctx, "/api/pages/", req, &payload); err != nil {
		return nil, err
	}
	page := payload.toDomain()
	return &page, nil
}

// UpdatePage updates a page. The server snapshots the previous content as a
// new version before applying the change.
func (c *Client) UpdatePage(ctx context.Context, id int64, input domain.UpdatePageInput) (*domain.Page, error) {
	req := updatePageRequest{
		Title:          input.Title,
		Content:        input.Content,
		VersionComment: input.VersionComment,
		IsPublic:       input.IsPublic,
	}
	var payload pagePayload
	if err := c.put(ctx, pagePath(id), req, &payload); err != nil {
		return nil, err
	}
	page := payload.toDomain()
	return &page, nil
}

// DeletePage removes a page.
func (c *Client) DeletePage(ctx context.Context, id int64) error {
	return c.delete(ctx, pagePath(id))
}

// GetHistory lists a page's versions, newest first.
func (c *Client) GetHistory(ctx context.Context, pageID int64) ([]domain.PageVersion, error) {
	var payload []versionPayload
	if err := c.get(ctx, pagePath(pageID)+"/history", nil, &payload); err != nil {
		return nil, err
	}
	versions := make([]domain.PageVersion, 0, len(payload))
	for _, v := range payload {
		versions = append(versions, v.toDomain())
	}
	return versions, nil
}

// RestoreVersion restores a historical version and returns the page as it
// stands afterwards.
func (c *Client) RestoreVersion(ctx context.Context, pageID, versionID int64) (*domain.Page, error) {
	var payload struct {
		Message string      `json:"message"`
		Page    pagePayload `json:"page"`
	}
	path := fmt.Sprintf("%s/restore/%d", pagePath(pageID), versionID)
	if err := c.post(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	page := payload.Page.toDomain()
	return &page, nil
}

// GetCollaborators lists a page's collaborators.
func (c *Client) GetCollaborators(ctx context.Context, pageID int64) ([]domain.Collaborator, error) {
	var payload []collaboratorPayload
	if err := c.get(ctx, pagePath(pageID)+"/collaborators", nil, &payload); err != nil {
		return nil, err
	}
	collaborators := make([]domain.Collaborator, 0, len(payload))
	for _, p := range payload {
		collab := p.toDomain()
		if collab.PageID == 0 {
			collab.PageID = pageID
		}
		collaborators = append(collaborators, collab)
	}
	return collaborators, nil
}

// AddCollaborator grants a user access to a page. Granting to an existing
// collaborator updates the level in place; the server omits the record in
// that case, so one is synthesised from the request.
func (c *Client) AddCollaborator(ctx context.Context, pageID, userID int64, level domain.AccessLevel) (*domain.Collaborator, error) {
	req := addCollaboratorRequest{UserID: userID, AccessLevel: string(level)}
	var payload struct {
		Message      string               `json:"message"`
		Collaborator *collaboratorPayload `json:"collaborator"`
	}
	if err := c.post(ctx, pagePath(pageID)+"/collaborators", req, &payload); err != nil {
		return nil, err
	}
	if payload.Collaborator == nil {
		return &domain.Collaborator{
			PageID:      pageID,
			User:        domain.UserRef{ID: userID},
			AccessLevel: level,
		}, nil
	}
	collab := payload.Collaborator.toDomain()
	if collab.PageID == 0 {
		collab.PageID = pageID
	}
	return &collab, nil
}

// GetLikes returns the like count and the current user's like state.
func (c *Client) GetLikes(ctx context.Context, pageID int64) (*domain.LikeStatus, error) {
	var payload likeStatusPayload
	if err := c.get(ctx, pagePath(pageID)+"/likes", nil, &payload); err != nil {
		return nil, err
	}
	return &domain.LikeStatus{
		PageID:    payload.PageID,
		LikeCount: payload.LikeCount,
		UserLiked: payload.UserLiked,
	}, nil
}

// LikePage records a like by the current user.
func (c *Client) LikePage(ctx context.Context, pageID int64) error {
	return c.post(ctx, pagePath(pageID)+"/like", nil, nil)
}

// UnlikePage removes the current user's like.
func (c *Client) UnlikePage(ctx context.Context, pageID int64) error {
	return c.delete(ctx, pagePath(pageID)+"/like")
}

// PopularPages returns the most liked accessible pages.
func (c *Client) PopularPages(ctx context.Context, limit int) ([]domain.Page, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var payload []pagePayload
	if err := c.get(ctx, "/api/pages/popular", query, &payload); err != nil {
		return nil, err
	}
	return toPages(payload), nil
}

// Search runs a text search over accessible pages.
func (c *Client) Search(ctx context.Context, queryText string) ([]domain.SearchResult, error) {
	query := url.Values{"q": {queryText}}
	var payload []searchResultPayload
	if err := c.get(ctx, "/api/search/", query, &payload); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(payload))
	for _, r := range payload {
		results = append(results, domain.SearchResult{
			Page: r.Page.toDomain(),
			Highlight: domain.SearchHighlight{
				Title:   r.Highlight.Title,
				Content: r.Highlight.Content,
			},
		})
	}
	return results, nil
}

func pagePath(id int64) string {
	return "/api/pages/" + strconv.FormatInt(id, 10)
}
