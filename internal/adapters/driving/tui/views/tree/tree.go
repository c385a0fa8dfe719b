// Package tree provides the page tree browser view for the TUI.
package tree

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

// row is one visible line: a page at a depth in the forest.
type row struct {
	page  *domain.Page
	depth int
}

// View is the page tree browser.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	pages  driving.PageService
	ctx    context.Context

	rows     []row
	selected int
	myOnly   bool
	loading  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewView creates a new tree view.
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

// Init initialises the view and loads the forest.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	service := v.pages
	ctx := v.ctx
	myOnly := v.myOnly
	return func() tea.Msg {
		if service == nil {
			return messages.TreeLoaded{Err: fmt.Errorf("page service not available"), MyOnly: myOnly}
		}
		roots, err := service.Tree(ctx, myOnly)
		return messages.TreeLoaded{Roots: roots, MyOnly: myOnly, Err: err}
	}
}

// Update handles messages for the tree view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.TreeLoaded:
		// A stale completion for the other filter state is dropped.
		if msg.MyOnly != v.myOnly {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.rows = flatten(msg.Roots)
		if v.selected >= len(v.rows) {
			v.selected = 0
		}
		return v, nil

	case messages.PageDeleted, messages.PageSaved:
		// The forest changed under us.
		return v, v.load()
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.rows)-1 {
			v.selected++
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Select):
		if page := v.current(); page != nil {
			id := page.ID
			return v, func() tea.Msg {
				return messages.PageSelected{ID: id}
			}
		}
		return v, nil

	case keymap.Matches(k, v.keymap.New):
		var parentID *int64
		if page := v.current(); page != nil {
			id := page.ID
			parentID = &id
		}
		return v, func() tea.Msg {
			return messages.EditRequested{ParentID: parentID}
		}

	case keymap.Matches(k, v.keymap.ToggleMine):
		v.myOnly = !v.myOnly
		v.selected = 0
		return v, v.load()

	case keymap.Matches(k, v.keymap.Refresh):
		return v, v.load()

	case keymap.Matches(k, v.keymap.Delete):
		page := v.current()
		if page == nil {
			return v, nil
		}
		service := v.pages
		ctx := v.ctx
		id := page.ID
		return v, func() tea.Msg {
			return messages.PageDeleted{PageID: id, Err: service.Delete(ctx, id)}
		}
	}

	return v, nil
}

func (v *View) current() *domain.Page {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return nil
	}
	return v.rows[v.selected].page
}

// flatten turns the forest into visible rows, depth first.
func flatten(roots []*domain.Page) []row {
	var rows []row
	var walk func(page *domain.Page, depth int)
	walk = func(page *domain.Page, depth int) {
		rows = append(rows, row{page: page, depth: depth})
		for _, child := range page.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return rows
}

// View renders the tree.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := "Pages"
	if v.myOnly {
		title = "My pages"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.rows) == 0:
		b.WriteString(v.styles.Muted.Render("No pages. Press n to create one."))
	default:
		for i, r := range v.rows {
			cursor := "  "
			style := v.styles.Normal
			if i == v.selected {
				cursor = "> "
				style = v.styles.Subtitle
			}
			indent := strings.Repeat("  ", r.depth)
			line := fmt.Sprintf("%s%s%s", cursor, indent, style.Render(r.page.Title))
			if !r.page.IsPublic {
				line += " " + v.styles.Private.Render("[private]")
			}
			if r.page.LikeCount > 0 {
				line += " " + v.styles.Muted.Render(fmt.Sprintf("(%d likes)", r.page.LikeCount))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] open  [n] new  [d] delete  [m] my pages  [esc] menu"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected row index.
func (v *View) Selected() int {
	return v.selected
}

// MyOnly reports whether the author filter is active.
func (v *View) MyOnly() bool {
	return v.myOnly
}

// Rows returns the number of visible rows.
func (v *View) Rows() int {
	return len(v.rows)
}
