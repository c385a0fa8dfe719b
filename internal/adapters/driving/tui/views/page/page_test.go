package page

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// mockPages implements driving.PageService for page view tests.
type mockPages struct {
	GetFunc    func(ctx context.Context, idOrSlug string) (*domain.Page, error)
	LikesFunc  func(ctx context.Context, pageID int64) (*domain.LikeStatus, error)
	LikeFunc   func(ctx context.Context, pageID int64) error
	UnlikeFunc func(ctx context.Context, pageID int64) error
}

func (m *mockPages) Get(ctx context.Context, idOrSlug string) (*domain.Page, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, idOrSlug)
	}
	return testPage(), nil
}

func (m *mockPages) Likes(ctx context.Context, pageID int64) (*domain.LikeStatus, error) {
	if m.LikesFunc != nil {
		return m.LikesFunc(ctx, pageID)
	}
	return &domain.LikeStatus{PageID: pageID, LikeCount: 3, UserLiked: false}, nil
}

func (m *mockPages) Like(ctx context.Context, pageID int64) error {
	if m.LikeFunc != nil {
		return m.LikeFunc(ctx, pageID)
	}
	return nil
}

func (m *mockPages) Unlike(ctx context.Context, pageID int64) error {
	if m.UnlikeFunc != nil {
		return m.UnlikeFunc(ctx, pageID)
	}
	return nil
}

func (m *mockPages) Collaborators(context.Context, int64) ([]domain.Collaborator, error) {
	return []domain.Collaborator{
		{User: domain.UserRef{ID: 2, Username: "bob"}, AccessLevel: domain.AccessWrite},
	}, nil
}

func (m *mockPages) Tree(context.Context, bool) ([]*domain.Page, error) { return nil, nil }
func (m *mockPages) History(context.Context, int64) ([]domain.PageVersion, error) {
	return nil, nil
}
func (m *mockPages) DiffVersions(context.Context, int64, int64, int64) ([]domain.DiffLine, error) {
	return nil, nil
}
func (m *mockPages) Popular(context.Context, int) ([]domain.Page, error) { return nil, nil }
func (m *mockPages) Create(context.Context, domain.CreatePageInput) (*domain.Page, error) {
	return nil, nil
}
func (m *mockPages) Update(context.Context, int64, domain.UpdatePageInput) (*domain.Page, error) {
	return nil, nil
}
func (m *mockPages) Delete(context.Context, int64) error { return nil }
func (m *mockPages) Restore(context.Context, int64, int64) (*domain.Page, error) { return nil, nil }
func (m *mockPages) AddCollaborator(context.Context, int64, int64, domain.AccessLevel) error {
	return nil
}

// mockRecent implements driving.RecentService for page view tests.
type mockRecent struct {
	recorded []int64
}

func (m *mockRecent) Record(_ context.Context, pageID int64) error {
	m.recorded = append(m.recorded, pageID)
	return nil
}
func (m *mockRecent) List(context.Context) ([]int64, error)  { return nil, nil }
func (m *mockRecent) Forget(context.Context, int64) error    { return nil }

func testPage() *domain.Page {
	return &domain.Page{
		ID:       7,
		Slug:     "getting-started",
		Title:    "Getting Started",
		Content:  "# Welcome\n\nFirst steps.",
		IsPublic: true,
		Author:   domain.UserRef{ID: 1, Username: "alice"},
	}
}

// rawRender keeps tests independent of the terminal renderer.
func rawRender(md string, _ int) string { return md }

func newTestView(pages *mockPages, recent *mockRecent) *View {
	var v *View
	if recent != nil {
		v = NewView(nil, nil, pages, recent, rawRender)
	} else {
		v = NewView(nil, nil, pages, nil, rawRender)
	}
	v.SetDimensions(80, 24)
	return v
}

// loadPage drives a view through the full load sequence.
func loadPage(v *View) *View {
	cmd := v.SetPage(messages.PageSelected{ID: 7})
	loaded := cmd().(messages.PageLoaded)
	v, slotCmd := v.Update(loaded)
	if slotCmd != nil {
		if batch, ok := slotCmd().(tea.BatchMsg); ok {
			for _, c := range batch {
				v, _ = v.Update(c())
			}
		}
	}
	return v
}

func TestView_SetPage_BumpsGeneration(t *testing.T) {
	v := newTestView(&mockPages{}, nil)

	first := v.Generation()
	v.SetPage(messages.PageSelected{ID: 7})

	assert.Equal(t, first+1, v.Generation())
	assert.True(t, v.Loading())
}

func TestView_SetPage_PrefersIDOverSlug(t *testing.T) {
	var requested string
	pages := &mockPages{
		GetFunc: func(_ context.Context, idOrSlug string) (*domain.Page, error) {
			requested = idOrSlug
			return testPage(), nil
		},
	}
	v := newTestView(pages, nil)

	cmd := v.SetPage(messages.PageSelected{ID: 7, Slug: "getting-started"})
	cmd()

	assert.Equal(t, "7", requested)
}

func TestView_SetPage_FallsBackToSlug(t *testing.T) {
	var requested string
	pages := &mockPages{
		GetFunc: func(_ context.Context, idOrSlug string) (*domain.Page, error) {
			requested = idOrSlug
			return testPage(), nil
		},
	}
	v := newTestView(pages, nil)

	cmd := v.SetPage(messages.PageSelected{Slug: "getting-started"})
	cmd()

	assert.Equal(t, "getting-started", requested)
}

func TestView_SetPage_RecordsVisit(t *testing.T) {
	recent := &mockRecent{}
	v := newTestView(&mockPages{}, recent)

	cmd := v.SetPage(messages.PageSelected{ID: 7})
	cmd()

	assert.Equal(t, []int64{7}, recent.recorded)
}

func TestView_FullLoad_FillsAllSlots(t *testing.T) {
	v := newTestView(&mockPages{}, nil)

	v = loadPage(v)

	require.NotNil(t, v.Page())
	assert.Equal(t, "Getting Started", v.Page().Title)
	assert.False(t, v.Loading())

	out := v.View()
	assert.Contains(t, out, "Getting Started")
	assert.Contains(t, out, "# Welcome")
	assert.Contains(t, out, "Likes: 3")
	assert.Contains(t, out, "bob (write)")
}

func TestView_StalePageLoadDropped(t *testing.T) {
	v := newTestView(&mockPages{}, nil)

	cmd := v.SetPage(messages.PageSelected{ID: 7})
	stale := cmd().(messages.PageLoaded)

	// A second selection arrives before the first completes.
	v.SetPage(messages.PageSelected{ID: 9})

	v, slotCmd := v.Update(stale)

	assert.Nil(t, v.Page())
	assert.Nil(t, slotCmd)
	assert.True(t, v.Loading())
}

func TestView_StaleSlotLoadsDropped(t *testing.T) {
	v := newTestView(&mockPages{}, nil)
	v = loadPage(v)
	staleGen := v.Generation()

	v.SetPage(messages.PageSelected{ID: 9})

	v, _ = v.Update(messages.CollaboratorsLoaded{
		Gen:           staleGen,
		Collaborators: []domain.Collaborator{{User: domain.UserRef{Username: "mallory"}}},
	})
	v, _ = v.Update(messages.LikesLoaded{
		Gen:    staleGen,
		Status: &domain.LikeStatus{LikeCount: 99},
	})

	// The stale completions must not repopulate the cleared slots.
	assert.True(t, v.Loading())
}

func TestView_SlotFailuresAreIndependent(t *testing.T) {
	v := newTestView(&mockPages{}, nil)

	cmd := v.SetPage(messages.PageSelected{ID: 7})
	loaded := cmd().(messages.PageLoaded)
	v, _ = v.Update(loaded)

	gen := v.Generation()
	v, _ = v.Update(messages.CollaboratorsLoaded{Gen: gen, Err: errors.New("forbidden")})
	v, _ = v.Update(messages.LikesLoaded{Gen: gen, Status: &domain.LikeStatus{PageID: 7, LikeCount: 3}})

	out := v.View()
	assert.Contains(t, out, "Collaborators: unavailable")
	assert.Contains(t, out, "Likes: 3")
	assert.Contains(t, out, "# Welcome")
}

func TestView_PageLoadError_StopsSlotLoads(t *testing.T) {
	pages := &mockPages{
		GetFunc: func(context.Context, string) (*domain.Page, error) {
			return nil, errors.New("not found")
		},
	}
	v := newTestView(pages, nil)

	cmd := v.SetPage(messages.PageSelected{ID: 404})
	loaded := cmd().(messages.PageLoaded)
	v, slotCmd := v.Update(loaded)

	assert.Nil(t, slotCmd)
	assert.False(t, v.Loading())
	assert.Contains(t, v.View(), "not found")
}

func TestView_LikeKey_TogglesLike(t *testing.T) {
	var liked int64
	pages := &mockPages{
		LikeFunc: func(_ context.Context, pageID int64) error {
			liked = pageID
			return nil
		},
	}
	v := newTestView(pages, nil)
	v = loadPage(v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})

	require.NotNil(t, cmd)
	msg := cmd()
	toggled, ok := msg.(messages.LikeToggled)
	require.True(t, ok)
	assert.NoError(t, toggled.Err)
	assert.Equal(t, int64(7), liked)
}

func TestView_LikeKey_UnlikesWhenLiked(t *testing.T) {
	var unliked int64
	pages := &mockPages{
		LikesFunc: func(_ context.Context, pageID int64) (*domain.LikeStatus, error) {
			return &domain.LikeStatus{PageID: pageID, LikeCount: 4, UserLiked: true}, nil
		},
		UnlikeFunc: func(_ context.Context, pageID int64) error {
			unliked = pageID
			return nil
		},
	}
	v := newTestView(pages, nil)
	v = loadPage(v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})

	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, int64(7), unliked)
}

func TestView_LikeToggled_RefreshesLikeSlotOnly(t *testing.T) {
	v := newTestView(&mockPages{}, nil)
	v = loadPage(v)
	gen := v.Generation()

	_, cmd := v.Update(messages.LikeToggled{PageID: 7})

	require.NotNil(t, cmd)
	msg := cmd()
	likes, ok := msg.(messages.LikesLoaded)
	require.True(t, ok)
	assert.Equal(t, gen, likes.Gen)
}

func TestView_EditKey_EmitsEditRequested(t *testing.T) {
	v := newTestView(&mockPages{}, nil)
	v = loadPage(v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	require.NotNil(t, cmd)
	msg := cmd()
	req, ok := msg.(messages.EditRequested)
	require.True(t, ok)
	require.NotNil(t, req.Page)
	assert.Equal(t, int64(7), req.Page.ID)
}

func TestView_HistoryKey_EmitsHistoryRequested(t *testing.T) {
	v := newTestView(&mockPages{}, nil)
	v = loadPage(v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})

	require.NotNil(t, cmd)
	msg := cmd()
	req, ok := msg.(messages.HistoryRequested)
	require.True(t, ok)
	assert.Equal(t, int64(7), req.PageID)
	assert.Equal(t, "Getting Started", req.Title)
}

func TestView_KeysIgnoredWithoutPage(t *testing.T) {
	v := newTestView(&mockPages{}, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	assert.Nil(t, cmd)
}
