package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// wireTime tolerates both RFC 3339 timestamps and the zone-less ISO form
// the server emits for rows stored without timezone information.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

type userRefPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u userRefPayload) toDomain() domain.UserRef {
	return domain.UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
}

type pagePayload struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Content   *string        `json:"content"`
	IsPublic  bool           `json:"is_public"`
	ParentID  *int64         `json:"parent_id"`
	Author    userRefPayload `json:"author"`
	CreatedAt wireTime       `json:"created_at"`
	UpdatedAt wireTime       `json:"updated_at"`
	LikeCount int            `json:"like_count"`
	UserLiked bool           `json:"user_liked"`
	Children  []pagePayload  `json:"children"`
}

func (p pagePayload) toDomain() domain.Page {
	page := domain.Page{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		IsPublic:  p.IsPublic,
		ParentID:  p.ParentID,
		Author:    p.Author.toDomain(),
		CreatedAt: p.CreatedAt.Time,
		UpdatedAt: p.UpdatedAt.Time,
		LikeCount: p.LikeCount,
		UserLiked: p.UserLiked,
	}
	if p.Content != nil {
		page.Content = *p.Content
	}
	for _, child := range p.Children {
		node := child.toDomain()
		page.Children = append(page.Children, &node)
	}
	return page
}

func toPages(payloads []pagePayload) []domain.Page {
	pages := make([]domain.Page, 0, len(payloads))
	for _, p := range payloads {
		pages = append(pages, p.toDomain())
	}
	return pages
}

type versionPayload struct {
	ID             int64          `json:"id"`
	PageID         int64          `json:"page_id"`
	Author         userRefPayload `json:"author"`
	Title          string         `json:"title"`
	Text           string         `json:"text"`
	VersionComment *string        `json:"version_comment"`
	CreatedAt      wireTime       `json:"created_at"`
}

func (v versionPayload) toDomain() domain.PageVersion {
	return domain.PageVersion{
		ID:             v.ID,
		PageID:         v.PageID,
		Author:         v.Author.toDomain(),
		Title:          v.Title,
		Text:           v.Text,
		VersionComment: v.VersionComment,
		CreatedAt:      v.CreatedAt.Time,
	}
}

type collaboratorPayload struct {
	ID          int64          `json:"id"`
	PageID      int64          `json:"page_id"`
	User        userRefPayload `json:"user"`
	AccessLevel string         `json:"access_level"`
	CreatedAt   wireTime       `json:"created_at"`
}

func (c collaboratorPayload) toDomain() domain.Collaborator {
	return domain.Collaborator{
		ID:          c.ID,
		PageID:      c.PageID,
		User:        c.User.toDomain(),
		AccessLevel: domain.AccessLevel(c.AccessLevel),
		CreatedAt:   c.CreatedAt.Time,
	}
}

type likeStatusPayload struct {
	PageID    int64 `json:"page_id"`
	LikeCount int   `json:"like_count"`
	UserLiked bool  `json:"user_liked"`
}

type searchResultPayload struct {
	Page      pagePayload `json:"page"`
	Highlight struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"highlight"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (u userPayload) toDomain() domain.User {
	return domain.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     domain.Role(u.Role),
		IsActive: u.IsActive,
	}
}

type createPageRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
	IsPublic bool   `json:"is_public"`
}

type updatePageRequest struct {
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	VersionComment *string `json:"version_comment,omitempty"`
	IsPublic       *bool   `json:"is_public,omitempty"`
}

type addCollaboratorRequest struct {
	UserID      int64  `json:"user_id"`
	AccessLevel string `json:"access_level"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
