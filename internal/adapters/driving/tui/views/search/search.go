// Package search provides the full-text search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/keymap"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

// View is the search prompt and result list.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	search  driving.SearchService
	ctx     context.Context
	input   textinput.Model
	results []domain.SearchResult

	focusInput bool
	selected   int
	query      string
	searching  bool
	searched   bool
	err        error
	width      int
	height     int
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, search driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	input := textinput.New()
	input.Placeholder = "Search pages..."
	input.CharLimit = 200
	input.Width = 50
	input.Focus()

	return &View{
		styles:     s,
		keymap:     km,
		search:     search,
		ctx:        context.Background(),
		input:      input,
		focusInput: true,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for searches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results.
func (v *View) Reset() {
	v.input.SetValue("")
	v.input.Focus()
	v.focusInput = true
	v.results = nil
	v.selected = 0
	v.query = ""
	v.searching = false
	v.searched = false
	v.err = nil
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.SearchCompleted:
		if msg.Query != v.query {
			return v, nil
		}
		v.searching = false
		v.searched = true
		v.results = msg.Results
		v.selected = 0
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if v.focusInput {
		switch k {
		case "enter":
			return v.submit()
		case "tab", "down":
			if len(v.results) > 0 {
				v.focusInput = false
				v.input.Blur()
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case k == "tab" || k == "/":
		v.focusInput = true
		return v, v.input.Focus()

	case keymap.Matches(k, v.keymap.Up):
		if v.selected == 0 {
			v.focusInput = true
			return v, v.input.Focus()
		}
		v.selected--
		return v, nil

	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.results)-1 {
			v.selected++
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Select):
		if v.selected >= 0 && v.selected < len(v.results) {
			page := v.results[v.selected].Page
			return v, func() tea.Msg {
				return messages.PageSelected{ID: page.ID, Slug: page.Slug}
			}
		}
		return v, nil
	}

	return v, nil
}

func (v *View) submit() (*View, tea.Cmd) {
	query := strings.TrimSpace(v.input.Value())
	if query == "" || v.searching {
		return v, nil
	}

	v.query = query
	v.searching = true
	v.err = nil

	service := v.search
	ctx := v.ctx
	return v, func() tea.Msg {
		results, err := service.Search(ctx, query)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// View renders the search prompt and results.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.searching:
		b.WriteString(v.styles.Muted.Render("Searching..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.searched && len(v.results) == 0:
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("No results for %q.", v.query)))
	default:
		v.renderResults(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] search/open  [tab] switch focus  [esc] back"))

	return b.String()
}

func (v *View) renderResults(b *strings.Builder) {
	for i, result := range v.results {
		cursor := "  "
		style := v.styles.Normal
		if !v.focusInput && i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor,
			style.Render(highlightText(result.Page.Title, result.Highlight.Title)),
			v.styles.Muted.Render(fmt.Sprintf("(#%d)", result.Page.ID))))
		if excerpt := highlightText("", result.Highlight.Content); excerpt != "" {
			b.WriteString("    " + v.styles.Muted.Render(excerpt) + "\n")
		}
	}
}

// highlightText strips server-side <mark> tags, falling back to the plain
// text when no highlight was returned.
func highlightText(plain, highlighted string) string {
	if highlighted == "" {
		return plain
	}
	replacer := strings.NewReplacer("<mark>", "", "</mark>", "")
	return replacer.Replace(highlighted)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = min(50, width-4)
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// Results returns the current result set.
func (v *View) Results() []domain.SearchResult {
	return v.results
}

// InputFocused reports whether the query field has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
