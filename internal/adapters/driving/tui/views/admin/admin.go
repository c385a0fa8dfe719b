// Package admin provides the user administration view for the TUI.
package admin

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

// View is the user list with block/unblock controls.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	admin  driving.AdminService
	ctx    context.Context

	users    []domain.User
	selected int
	loading  bool
	err      error
	width    int
	height   int
}

// NewView creates a new admin view.
func NewView(s *styles.Styles, km *keymap.KeyMap, admin driving.AdminService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		admin:  admin,
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

// Init triggers the initial user load.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.err = nil

	service := v.admin
	ctx := v.ctx
	return func() tea.Msg {
		users, err := service.Users(ctx)
		return messages.UsersLoaded{Users: users, Err: err}
	}
}

// Update handles messages for the admin view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.UsersLoaded:
		v.loading = false
		v.users = msg.Users
		v.err = msg.Err
		if v.selected >= len(v.users) {
			v.selected = 0
		}
		return v, nil

	case messages.UserBlockToggled:
		if msg.Err != nil {
			v.loading = false
			v.err = msg.Err
			return v, nil
		}
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
		if v.selected < len(v.users)-1 {
			v.selected++
		}
		return v, nil

	case k == "b":
		return v.toggleBlock()

	case keymap.Matches(k, v.keymap.Refresh):
		return v, v.load()
	}

	return v, nil
}

func (v *View) toggleBlock() (*View, tea.Cmd) {
	if v.selected < 0 || v.selected >= len(v.users) {
		return v, nil
	}

	user := v.users[v.selected]
	v.loading = true

	service := v.admin
	ctx := v.ctx
	return v, func() tea.Msg {
		var err error
		if user.IsActive {
			err = service.Block(ctx, user.ID)
		} else {
			err = service.Unblock(ctx, user.ID)
		}
		return messages.UserBlockToggled{UserID: user.ID, Err: err}
	}
}

// View renders the user list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Users"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		return b.String()
	case len(v.users) == 0:
		b.WriteString(v.styles.Muted.Render("No users."))
		return b.String()
	}

	for i, user := range v.users {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		status := "active"
		statusStyle := v.styles.Success
		if !user.IsActive {
			status = "blocked"
			statusStyle = v.styles.Error
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n", cursor,
			style.Render(fmt.Sprintf("#%-4d %-16s", user.ID, user.Username)),
			v.styles.Muted.Render(string(user.Role)),
			statusStyle.Render(status)))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[b] block/unblock  [ctrl+r] refresh  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the index of the highlighted user.
func (v *View) Selected() int {
	return v.selected
}

// Users returns the loaded user list.
func (v *View) Users() []domain.User {
	return v.users
}
