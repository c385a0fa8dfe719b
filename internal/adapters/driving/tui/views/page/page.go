// Package page provides the single-page reading view for the TUI.
//
// The page body, collaborator list and like status load concurrently and
// render independently: one slot failing or lagging never blanks the
// others. Each load is stamped with the view generation at request time;
// completions for an earlier generation are dropped, so switching pages
// quickly never shows slot data from the page that was left.
package page

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/keymap"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

// renderFunc renders markdown to terminal output. Injected so tests can
// use a passthrough.
type renderFunc func(md string, width int) string

// View is the page reading view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	pages    driving.PageService
	recent   driving.RecentService
	renderMD renderFunc
	ctx      context.Context

	// gen increments on every SetPage; slot completions carrying an
	// older gen are stale and ignored.
	gen int

	page        *domain.Page
	pageErr     error
	pageLoading bool

	collaborators []domain.Collaborator
	collabErr     error
	collabLoading bool

	likes        *domain.LikeStatus
	likesErr     error
	likesLoading bool

	width  int
	height int
	ready  bool
}

// NewView creates a new page view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	pages driving.PageService,
	recent driving.RecentService,
	render renderFunc,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if render == nil {
		render = func(md string, _ int) string { return md }
	}

	return &View{
		styles:   s,
		keymap:   km,
		pages:    pages,
		recent:   recent,
		renderMD: render,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for data loads.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetPage starts loading a page by ID or slug. It bumps the generation,
// clears every slot and fires the content fetch; the collaborator and
// like fetches follow once the page ID is known.
func (v *View) SetPage(sel messages.PageSelected) tea.Cmd {
	v.gen++
	gen := v.gen

	v.page = nil
	v.pageErr = nil
	v.pageLoading = true
	v.collaborators = nil
	v.collabErr = nil
	v.collabLoading = true
	v.likes = nil
	v.likesErr = nil
	v.likesLoading = true

	idOrSlug := sel.Slug
	if sel.ID != 0 {
		idOrSlug = strconv.FormatInt(sel.ID, 10)
	}

	service := v.pages
	recent := v.recent
	ctx := v.ctx
	return func() tea.Msg {
		if service == nil {
			return messages.PageLoaded{Gen: gen, Err: fmt.Errorf("page service not available")}
		}
		page, err := service.Get(ctx, idOrSlug)
		if err == nil && recent != nil {
			// Best effort; a failed visit record never breaks the read.
			_ = recent.Record(ctx, page.ID)
		}
		return messages.PageLoaded{Gen: gen, Page: page, Err: err}
	}
}

func (v *View) loadSlots(pageID int64) tea.Cmd {
	gen := v.gen
	service := v.pages
	ctx := v.ctx

	loadCollaborators := func() tea.Msg {
		collaborators, err := service.Collaborators(ctx, pageID)
		return messages.CollaboratorsLoaded{Gen: gen, PageID: pageID, Collaborators: collaborators, Err: err}
	}
	loadLikes := func() tea.Msg {
		status, err := service.Likes(ctx, pageID)
		return messages.LikesLoaded{Gen: gen, Status: status, Err: err}
	}
	return tea.Batch(loadCollaborators, loadLikes)
}

// Update handles messages for the page view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.PageLoaded:
		if msg.Gen != v.gen {
			return v, nil
		}
		v.pageLoading = false
		if msg.Err != nil {
			v.pageErr = msg.Err
			v.collabLoading = false
			v.likesLoading = false
			return v, nil
		}
		v.page = msg.Page
		return v, v.loadSlots(msg.Page.ID)

	case messages.CollaboratorsLoaded:
		if msg.Gen != v.gen {
			return v, nil
		}
		v.collabLoading = false
		v.collaborators = msg.Collaborators
		v.collabErr = msg.Err
		return v, nil

	case messages.LikesLoaded:
		if msg.Gen != v.gen {
			return v, nil
		}
		v.likesLoading = false
		v.likes = msg.Status
		v.likesErr = msg.Err
		return v, nil

	case messages.LikeToggled:
		if msg.Err != nil {
			v.likesErr = msg.Err
			return v, nil
		}
		// Refresh just the like slot.
		if v.page != nil {
			gen := v.gen
			service := v.pages
			ctx := v.ctx
			pageID := v.page.ID
			return v, func() tea.Msg {
				status, err := service.Likes(ctx, pageID)
				return messages.LikesLoaded{Gen: gen, Status: status, Err: err}
			}
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.page == nil {
		return v, nil
	}

	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Edit):
		page := v.page
		return v, func() tea.Msg {
			return messages.EditRequested{Page: page}
		}

	case keymap.Matches(k, v.keymap.History):
		pageID := v.page.ID
		title := v.page.Title
		return v, func() tea.Msg {
			return messages.HistoryRequested{PageID: pageID, Title: title}
		}

	case keymap.Matches(k, v.keymap.Like):
		return v.toggleLike()
	}

	return v, nil
}

func (v *View) toggleLike() (*View, tea.Cmd) {
	if v.likes == nil {
		return v, nil
	}
	service := v.pages
	ctx := v.ctx
	pageID := v.likes.PageID
	liked := v.likes.UserLiked
	return v, func() tea.Msg {
		var err error
		if liked {
			err = service.Unlike(ctx, pageID)
		} else {
			err = service.Like(ctx, pageID)
		}
		return messages.LikeToggled{PageID: pageID, Err: err}
	}
}

// View renders the page with its three slots.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	switch {
	case v.pageLoading:
		b.WriteString(v.styles.Muted.Render("Loading page..."))
		return b.String()
	case v.pageErr != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.pageErr.Error()))
		return b.String()
	case v.page == nil:
		b.WriteString(v.styles.Muted.Render("No page selected."))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(v.page.Title))
	if !v.page.IsPublic {
		b.WriteString(" " + v.styles.Private.Render("[private]"))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
		"by %s, updated %s", v.page.Author.Username, v.page.UpdatedAt.Format("2006-01-02 15:04"))))
	b.WriteString("\n\n")

	b.WriteString(v.renderMD(v.page.Content, v.width-2))
	b.WriteString("\n\n")

	b.WriteString(v.likesLine())
	b.WriteString("\n")
	b.WriteString(v.collaboratorsLine())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[e] edit  [h] history  [l] like  [esc] back"))

	return b.String()
}

func (v *View) likesLine() string {
	switch {
	case v.likesLoading:
		return v.styles.Muted.Render("Likes: loading...")
	case v.likesErr != nil:
		return v.styles.Error.Render("Likes: unavailable")
	case v.likes == nil:
		return v.styles.Muted.Render("Likes: -")
	}

	marker := ""
	if v.likes.UserLiked {
		marker = " (you)"
	}
	return v.styles.Normal.Render(fmt.Sprintf("Likes: %d%s", v.likes.LikeCount, marker))
}

func (v *View) collaboratorsLine() string {
	switch {
	case v.collabLoading:
		return v.styles.Muted.Render("Collaborators: loading...")
	case v.collabErr != nil:
		return v.styles.Error.Render("Collaborators: unavailable")
	case len(v.collaborators) == 0:
		return v.styles.Muted.Render("Collaborators: none")
	}

	names := make([]string, 0, len(v.collaborators))
	for _, c := range v.collaborators {
		names = append(names, fmt.Sprintf("%s (%s)", c.User.Username, c.AccessLevel))
	}
	return v.styles.Normal.Render("Collaborators: " + strings.Join(names, ", "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Page returns the loaded page, or nil.
func (v *View) Page() *domain.Page {
	return v.page
}

// Generation returns the current view generation.
func (v *View) Generation() int {
	return v.gen
}

// Loading reports whether any slot is still loading.
func (v *View) Loading() bool {
	return v.pageLoading || v.collabLoading || v.likesLoading
}
