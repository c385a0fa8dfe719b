// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	// Logout ends the session instead of navigating.
	Logout bool
	// Quit exits the app instead of navigating.
	Quit bool
	// AdminOnly hides the item from regular users.
	AdminOnly bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	isAdmin  bool
	username string
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Browse pages", View: messages.ViewTree},
			{Label: "Search", View: messages.ViewSearch},
			{Label: "Users", View: messages.ViewAdmin, AdminOnly: true},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Log out", Logout: true},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// SetUser sets the identity line and admin visibility.
func (v *View) SetUser(username string, isAdmin bool) {
	v.username = username
	v.isAdmin = isAdmin
	if v.selected >= len(v.visibleItems()) {
		v.selected = 0
	}
}

func (v *View) visibleItems() []Item {
	items := make([]Item, 0, len(v.items))
	for _, item := range v.items {
		if item.AdminOnly && !v.isAdmin {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		items := v.visibleItems()
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := items[v.selected]
			switch {
			case item.Quit:
				return v, tea.Quit
			case item.Logout:
				return v, func() tea.Msg {
					return messages.SessionEnded{}
				}
			default:
				return v, func() tea.Msg {
					return messages.ViewChanged{View: item.View}
				}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Wiki"))
	b.WriteString("\n\n")

	identity := "browsing as guest"
	if v.username != "" {
		identity = "signed in as " + v.username
	}
	b.WriteString(v.styles.Muted.Render(identity))
	b.WriteString("\n\n")

	for i, item := range v.visibleItems() {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
