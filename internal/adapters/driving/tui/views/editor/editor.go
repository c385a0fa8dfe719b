// Package editor provides the page create/edit form for the TUI.
package editor

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
)

const (
	focusTitle = iota
	focusBody
	focusComment
)

// View is the create/edit form. Editing an existing page pre-fills the
// fields; saving snapshots the previous content server-side.
type View struct {
	styles *styles.Styles
	pages  driving.PageService
	ctx    context.Context

	title   textinput.Model
	body    textarea.Model
	comment textinput.Model
	focused int

	// editing is the page being updated, nil when creating.
	editing  *domain.Page
	parentID *int64
	isPublic bool

	busy   bool
	err    error
	width  int
	height int
}

// NewView creates a new editor view.
func NewView(s *styles.Styles, pages driving.PageService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	title := textinput.New()
	title.Placeholder = "Page title"
	title.CharLimit = 200
	title.Width = 60

	body := textarea.New()
	body.Placeholder = "Markdown content..."
	body.SetWidth(76)
	body.SetHeight(12)

	comment := textinput.New()
	comment.Placeholder = "Version comment (optional)"
	comment.CharLimit = 200
	comment.Width = 60

	return &View{
		styles:  s,
		pages:   pages,
		ctx:     context.Background(),
		title:   title,
		body:    body,
		comment: comment,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for save calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// Open prepares the form from an edit request.
func (v *View) Open(req messages.EditRequested) {
	v.editing = req.Page
	v.parentID = req.ParentID
	v.busy = false
	v.err = nil
	v.focused = focusTitle
	v.comment.Reset()

	if req.Page != nil {
		v.title.SetValue(req.Page.Title)
		v.body.SetValue(req.Page.Content)
		v.isPublic = req.Page.IsPublic
	} else {
		v.title.Reset()
		v.body.Reset()
		v.isPublic = false
	}

	v.title.Focus()
	v.body.Blur()
	v.comment.Blur()
}

// Update handles messages for the editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.body.SetWidth(msg.Width - 4)
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab":
			v.cycleFocus(1)
			return v, nil
		case "shift+tab":
			v.cycleFocus(-1)
			return v, nil
		case "ctrl+s":
			return v.save()
		case "ctrl+p":
			v.isPublic = !v.isPublic
			return v, nil
		}

	case messages.PageSaved:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch v.focused {
	case focusTitle:
		v.title, cmd = v.title.Update(msg)
	case focusBody:
		v.body, cmd = v.body.Update(msg)
	case focusComment:
		v.comment, cmd = v.comment.Update(msg)
	}
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *View) cycleFocus(delta int) {
	fields := 2
	if v.editing != nil {
		// The comment field only applies to updates.
		fields = 3
	}
	v.focused = (v.focused + delta + fields) % fields

	v.title.Blur()
	v.body.Blur()
	v.comment.Blur()
	switch v.focused {
	case focusTitle:
		v.title.Focus()
	case focusBody:
		v.body.Focus()
	case focusComment:
		v.comment.Focus()
	}
}

func (v *View) save() (*View, tea.Cmd) {
	title := strings.TrimSpace(v.title.Value())
	if title == "" {
		return v, nil
	}

	v.busy = true
	v.err = nil

	service := v.pages
	ctx := v.ctx
	content := v.body.Value()
	isPublic := v.isPublic

	if v.editing == nil {
		parentID := v.parentID
		return v, func() tea.Msg {
			page, err := service.Create(ctx, domain.CreatePageInput{
				Title:    title,
				Content:  content,
				ParentID: parentID,
				IsPublic: isPublic,
			})
			return messages.PageSaved{Page: page, Err: err}
		}
	}

	id := v.editing.ID
	input := domain.UpdatePageInput{Title: title, Content: content}
	if comment := strings.TrimSpace(v.comment.Value()); comment != "" {
		input.VersionComment = &comment
	}
	if isPublic != v.editing.IsPublic {
		input.IsPublic = &isPublic
	}
	return v, func() tea.Msg {
		page, err := service.Update(ctx, id, input)
		return messages.PageSaved{Page: page, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	heading := "New page"
	if v.editing != nil {
		heading = "Edit: " + v.editing.Title
	}
	b.WriteString(v.styles.Title.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Normal.Render("Title"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.title.View()))
	b.WriteString("\n")
	b.WriteString(v.body.View())
	b.WriteString("\n")

	if v.editing != nil {
		b.WriteString(v.styles.Normal.Render("Comment"))
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render(v.comment.View()))
		b.WriteString("\n")
	}

	visibility := "private"
	if v.isPublic {
		visibility = "public"
	}
	b.WriteString(v.styles.Muted.Render("Visibility: " + visibility))
	b.WriteString("\n\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Saving..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	default:
		b.WriteString(v.styles.Help.Render("[tab] next field  [ctrl+s] save  [ctrl+p] toggle visibility  [esc] cancel"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.body.SetWidth(width - 4)
}

// Editing returns the page being updated, or nil when creating.
func (v *View) Editing() *domain.Page {
	return v.editing
}

// IsPublic reports the form's visibility toggle.
func (v *View) IsPublic() bool {
	return v.isPublic
}

// Err returns the last save failure.
func (v *View) Err() error {
	return v.err
}
