// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/keymap"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// Bar displays the session identity, the current state and keybinding
// hints. It is passive; the owning view drives it via the Set methods.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	username string
	hints    []key.Binding
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := b.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	identity := "guest"
	if b.username != "" {
		identity = b.username
	}

	switch b.state {
	case StateLoading:
		return b.styles.Muted.Render(identity + " | loading...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("%s | %s", identity, b.message))
		}
		return b.styles.Error.Render(identity + " | error")
	case StateReady:
		if b.message != "" {
			return b.styles.Normal.Render(fmt.Sprintf("%s | %s", identity, b.message))
		}
	}
	return b.styles.Muted.Render(identity)
}

func (b *Bar) renderRight() string {
	bindings := b.hints
	if len(bindings) == 0 {
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, bind := range bindings {
		h := bind.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets a transient message shown next to the identity.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetUsername sets the displayed session identity. Empty means guest.
func (b *Bar) SetUsername(username string) {
	b.username = username
}

// SetHints overrides the keybinding hints on the right side.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the state and message, keeping the identity.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
