package cli

import (
	"context"
	"errors"
	"time"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// setupTestServices installs happy-path mocks for every injected service
// and returns a cleanup that restores the previous set.
func setupTestServices() func() {
	oldSession := sessionService
	oldPages := pageService
	oldSearch := searchService
	oldAdmin := adminService
	oldRecent := recentService

	sessionService = &mockSessionService{}
	pageService = &mockPageService{}
	searchService = &mockSearchService{}
	adminService = &mockAdminService{}
	recentService = &mockRecentService{}

	return func() {
		sessionService = oldSession
		pageService = oldPages
		searchService = oldSearch
		adminService = oldAdmin
		recentService = oldRecent
	}
}

var testTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testPage() *domain.Page {
	return &domain.Page{
		ID:        7,
		Slug:      "getting-started",
		Title:     "Getting Started",
		Content:   "# Welcome\n\nFirst steps.",
		IsPublic:  true,
		Author:    domain.UserRef{ID: 1, Username: "alice"},
		CreatedAt: testTime,
		UpdatedAt: testTime,
		LikeCount: 3,
	}
}

// mockSessionService implements driving.SessionService.
type mockSessionService struct {
	loggedOut bool
}

func (m *mockSessionService) Login(_ context.Context, username, _ string) (*domain.User, error) {
	return &domain.User{ID: 1, Username: username, Email: username + "@example.com", Role: domain.RoleUser, IsActive: true}, nil
}

func (m *mockSessionService) Register(_ context.Context, _, _, _ string) error {
	return nil
}

func (m *mockSessionService) Logout() error {
	m.loggedOut = true
	return nil
}

func (m *mockSessionService) Current() domain.Session {
	if m.loggedOut {
		return domain.Session{}
	}
	return domain.Session{
		User:  &domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin, IsActive: true},
		Token: "tok-123",
	}
}

func (m *mockSessionService) Resume(_ context.Context) error {
	return nil
}

// mockPageService implements driving.PageService.
type mockPageService struct {
	deletedID  int64
	likedID    int64
	unlikedID  int64
	lastUpdate domain.UpdatePageInput
}

func (m *mockPageService) Tree(_ context.Context, _ bool) ([]*domain.Page, error) {
	root := testPage()
	child := testPage()
	child.ID = 8
	child.Slug = "installation"
	child.Title = "Installation"
	child.IsPublic = false
	child.ParentID = &root.ID
	root.Children = []*domain.Page{child}
	return []*domain.Page{root}, nil
}

func (m *mockPageService) Get(_ context.Context, _ string) (*domain.Page, error) {
	return testPage(), nil
}

func (m *mockPageService) History(_ context.Context, pageID int64) ([]domain.PageVersion, error) {
	comment := "fix typo"
	return []domain.PageVersion{
		{ID: 12, PageID: pageID, Author: domain.UserRef{ID: 1, Username: "alice"}, Title: "Getting Started", Text: "new", VersionComment: &comment, CreatedAt: testTime},
		{ID: 11, PageID: pageID, Author: domain.UserRef{ID: 2, Username: "bob"}, Title: "Getting Started", Text: "old", CreatedAt: testTime.Add(-time.Hour)},
	}, nil
}

func (m *mockPageService) DiffVersions(_ context.Context, _, _, _ int64) ([]domain.DiffLine, error) {
	return []domain.DiffLine{
		{Kind: domain.DiffUnchanged, Text: "# Welcome"},
		{Kind: domain.DiffRemoved, Text: "Old line."},
		{Kind: domain.DiffAdded, Text: "New line."},
	}, nil
}

func (m *mockPageService) Collaborators(_ context.Context, pageID int64) ([]domain.Collaborator, error) {
	return []domain.Collaborator{
		{ID: 1, PageID: pageID, User: domain.UserRef{ID: 2, Username: "bob", Email: "bob@example.com"}, AccessLevel: domain.AccessWrite, CreatedAt: testTime},
	}, nil
}

func (m *mockPageService) Likes(_ context.Context, pageID int64) (*domain.LikeStatus, error) {
	return &domain.LikeStatus{PageID: pageID, LikeCount: 4, UserLiked: true}, nil
}

func (m *mockPageService) Popular(_ context.Context, limit int) ([]domain.Page, error) {
	pages := []domain.Page{*testPage()}
	if limit < len(pages) {
		pages = pages[:limit]
	}
	return pages, nil
}

func (m *mockPageService) Create(_ context.Context, input domain.CreatePageInput) (*domain.Page, error) {
	page := testPage()
	page.ID = 42
	page.Slug = "new-page"
	page.Title = input.Title
	page.Content = input.Content
	return page, nil
}

func (m *mockPageService) Update(_ context.Context, id int64, input domain.UpdatePageInput) (*domain.Page, error) {
	m.lastUpdate = input
	page := testPage()
	page.ID = id
	page.Title = input.Title
	return page, nil
}

func (m *mockPageService) Delete(_ context.Context, id int64) error {
	m.deletedID = id
	return nil
}

func (m *mockPageService) Restore(_ context.Context, pageID, _ int64) (*domain.Page, error) {
	page := testPage()
	page.ID = pageID
	return page, nil
}

func (m *mockPageService) AddCollaborator(_ context.Context, _, _ int64, _ domain.AccessLevel) error {
	return nil
}

func (m *mockPageService) Like(_ context.Context, id int64) error {
	m.likedID = id
	return nil
}

func (m *mockPageService) Unlike(_ context.Context, id int64) error {
	m.unlikedID = id
	return nil
}

// mockSearchService implements driving.SearchService.
type mockSearchService struct{}

func (m *mockSearchService) Search(_ context.Context, _ string) ([]domain.SearchResult, error) {
	return []domain.SearchResult{
		{
			Page: *testPage(),
			Highlight: domain.SearchHighlight{
				Title:   "<mark>Getting</mark> Started",
				Content: "First <mark>steps</mark>.",
			},
		},
	}, nil
}

// mockAdminService implements driving.AdminService.
type mockAdminService struct {
	blockedID   int64
	unblockedID int64
}

func (m *mockAdminService) Users(_ context.Context) ([]domain.User, error) {
	return []domain.User{
		{ID: 1, Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin, IsActive: true},
		{ID: 2, Username: "bob", Email: "bob@example.com", Role: domain.RoleUser, IsActive: false},
	}, nil
}

func (m *mockAdminService) CollaboratorCandidates(_ context.Context) ([]domain.UserRef, error) {
	return []domain.UserRef{
		{ID: 2, Username: "bob", Email: "bob@example.com"},
	}, nil
}

func (m *mockAdminService) Block(_ context.Context, userID int64) error {
	m.blockedID = userID
	return nil
}

func (m *mockAdminService) Unblock(_ context.Context, userID int64) error {
	m.unblockedID = userID
	return nil
}

// mockRecentService implements driving.RecentService.
type mockRecentService struct {
	recorded  []int64
	forgotten []int64
}

func (m *mockRecentService) Record(_ context.Context, pageID int64) error {
	m.recorded = append(m.recorded, pageID)
	return nil
}

func (m *mockRecentService) List(_ context.Context) ([]int64, error) {
	return []int64{7}, nil
}

func (m *mockRecentService) Forget(_ context.Context, pageID int64) error {
	m.forgotten = append(m.forgotten, pageID)
	return nil
}

// Error-returning variants for the failure paths.

var errMockFailure = errors.New("mock failure")

type mockPageServiceError struct {
	mockPageService
}

func (m *mockPageServiceError) Tree(_ context.Context, _ bool) ([]*domain.Page, error) {
	return nil, errMockFailure
}

func (m *mockPageServiceError) Get(_ context.Context, _ string) (*domain.Page, error) {
	return nil, errMockFailure
}

func (m *mockPageServiceError) Delete(_ context.Context, _ int64) error {
	return errMockFailure
}

type mockSearchServiceEmpty struct{}

func (m *mockSearchServiceEmpty) Search(_ context.Context, _ string) ([]domain.SearchResult, error) {
	return nil, nil
}
