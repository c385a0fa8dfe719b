// Package history provides the version history and diff view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/keymap"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

// mode selects between the version list and a rendered diff.
type mode int

const (
	modeList mode = iota
	modeDiff
)

// View is the version history browser.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	pages  driving.PageService
	ctx    context.Context

	pageID    int64
	pageTitle string
	versions  []domain.PageVersion
	selected  int
	mode      mode
	diff      []domain.DiffLine
	loading   bool
	err       error
	width     int
	height    int
}

// NewView creates a new history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, pages driving.PageService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		pages:  pages,
		ctx:    context.Background(),
		width:  80,
		height: 24,
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

// Open loads the history for a page.
func (v *View) Open(req messages.HistoryRequested) tea.Cmd {
	v.pageID = req.PageID
	v.pageTitle = req.Title
	v.versions = nil
	v.selected = 0
	v.mode = modeList
	v.diff = nil
	v.loading = true
	v.err = nil

	service := v.pages
	ctx := v.ctx
	pageID := req.PageID
	return func() tea.Msg {
		versions, err := service.History(ctx, pageID)
		return messages.HistoryLoaded{PageID: pageID, Versions: versions, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.HistoryLoaded:
		if msg.PageID != v.pageID {
			return v, nil
		}
		v.loading = false
		v.versions = msg.Versions
		v.err = msg.Err
		return v, nil

	case messages.DiffComputed:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.diff = msg.Lines
		v.mode = modeDiff
		return v, nil

	case messages.VersionRestored:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if v.mode == modeDiff {
		if keymap.Matches(k, v.keymap.Back) {
			v.mode = modeList
			v.diff = nil
			return v, nil
		}
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.versions)-1 {
			v.selected++
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Select):
		return v.showDiff()

	case keymap.Matches(k, v.keymap.Restore):
		return v.restore()
	}

	return v, nil
}

// showDiff diffs the selected version against the one before it.
// Versions are newest first, so the predecessor sits one index later;
// the oldest version diffs against the empty text.
func (v *View) showDiff() (*View, tea.Cmd) {
	if v.selected < 0 || v.selected >= len(v.versions) {
		return v, nil
	}

	newer := v.versions[v.selected]
	var olderID int64
	if v.selected+1 < len(v.versions) {
		olderID = v.versions[v.selected+1].ID
	}

	v.loading = true
	service := v.pages
	ctx := v.ctx
	pageID := v.pageID
	newerID := newer.ID
	older := olderID
	return v, func() tea.Msg {
		lines, err := service.DiffVersions(ctx, pageID, older, newerID)
		return messages.DiffComputed{OlderID: older, NewerID: newerID, Lines: lines, Err: err}
	}
}

func (v *View) restore() (*View, tea.Cmd) {
	if v.selected < 0 || v.selected >= len(v.versions) {
		return v, nil
	}

	v.loading = true
	service := v.pages
	ctx := v.ctx
	pageID := v.pageID
	versionID := v.versions[v.selected].ID
	return v, func() tea.Msg {
		page, err := service.Restore(ctx, pageID, versionID)
		return messages.VersionRestored{Page: page, Err: err}
	}
}

// View renders the version list or the active diff.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("History: " + v.pageTitle))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		return b.String()
	}

	if v.mode == modeDiff {
		v.renderDiff(&b)
		return b.String()
	}

	if len(v.versions) == 0 {
		b.WriteString(v.styles.Muted.Render("No versions yet."))
		return b.String()
	}

	for i, version := range v.versions {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		comment := ""
		if version.VersionComment != nil && *version.VersionComment != "" {
			comment = " - " + *version.VersionComment
		}
		b.WriteString(fmt.Sprintf("%s%s%s\n", cursor, style.Render(fmt.Sprintf(
			"v%d  %s  by %s", version.ID, version.CreatedAt.Format("2006-01-02 15:04"), version.Author.Username)),
			v.styles.Muted.Render(comment)))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] diff against previous  [r] restore  [esc] back"))

	return b.String()
}

func (v *View) renderDiff(b *strings.Builder) {
	for _, line := range v.diff {
		switch line.Kind {
		case domain.DiffAdded:
			b.WriteString(v.styles.DiffAdded.Render("+ " + line.Text))
		case domain.DiffRemoved:
			b.WriteString(v.styles.DiffRemoved.Render("- " + line.Text))
		default:
			b.WriteString(v.styles.Muted.Render("  " + line.Text))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[esc] back to versions"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the selected version index.
func (v *View) Selected() int {
	return v.selected
}

// InDiff reports whether the diff overlay is active.
func (v *View) InDiff() bool {
	return v.mode == modeDiff
}
