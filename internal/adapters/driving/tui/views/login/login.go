// Package login provides the login form view for the TUI.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

const (
	fieldUsername = iota
	fieldPassword
)

// View is the username/password form.
type View struct {
	styles  *styles.Styles
	session driving.SessionService
	ctx     context.Context

	username textinput.Model
	password textinput.Model
	focused  int
	busy     bool
	err      error
	width    int
	height   int
}

// NewView creates a new login view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &View{
		styles:   s,
		session:  session,
		ctx:      context.Background(),
		username: username,
		password: password,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context used for login calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			v.toggleFocus()
			return v, nil
		case "enter":
			if v.focused == fieldUsername {
				v.toggleFocus()
				return v, nil
			}
			return v.submit()
		}

	case messages.LoginCompleted:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			v.password.Reset()
			return v, nil
		}
		v.err = nil
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.username, cmd = v.username.Update(msg)
	cmds = append(cmds, cmd)
	v.password, cmd = v.password.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *View) toggleFocus() {
	if v.focused == fieldUsername {
		v.focused = fieldPassword
		v.username.Blur()
		v.password.Focus()
	} else {
		v.focused = fieldUsername
		v.password.Blur()
		v.username.Focus()
	}
}

func (v *View) submit() (*View, tea.Cmd) {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	if username == "" || password == "" {
		return v, nil
	}

	v.busy = true
	v.err = nil
	service := v.session
	ctx := v.ctx
	return v, func() tea.Msg {
		user, err := service.Login(ctx, username, password)
		return messages.LoginCompleted{User: user, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Username"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.username.View()))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.password.View()))
	b.WriteString("\n\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Signing in..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	default:
		b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] sign in  [esc] browse as guest"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Reset clears the form for a fresh login attempt.
func (v *View) Reset() {
	v.username.Reset()
	v.password.Reset()
	v.err = nil
	v.busy = false
	v.focused = fieldUsername
	v.password.Blur()
	v.username.Focus()
}

// Err returns the last login failure.
func (v *View) Err() error {
	return v.err
}

// Busy reports whether a login is in flight.
func (v *View) Busy() bool {
	return v.busy
}
