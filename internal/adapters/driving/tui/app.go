package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/components/status"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/keymap"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/messages"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/styles"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/admin"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/editor"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/history"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/login"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/menu"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/page"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/search"
	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui/views/tree"
	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings shared across views.
	keymap *keymap.KeyMap

	// statusBar shows the identity, errors and keybinding hints.
	statusBar *status.Bar

	// loginView is the sign-in form.
	loginView *login.View

	// menuView is the main navigation menu.
	menuView *menu.View

	// treeView is the page tree browser.
	treeView *tree.View

	// pageView renders one page with its collaborator and like panels.
	pageView *page.View

	// editorView is the create/edit form.
	editorView *editor.View

	// historyView lists versions and renders diffs.
	historyView *history.View

	// searchView is the query input and result list.
	searchView *search.View

	// adminView is the user management panel.
	adminView *admin.View

	// user is the signed-in identity, nil when browsing as guest.
	user *domain.User

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		statusBar:   status.NewBar(s, km),
		loginView:   login.NewView(s, ports.Session),
		menuView:    menu.NewView(s),
		treeView:    tree.NewView(s, km, ports.Pages),
		pageView:    page.NewView(s, km, ports.Pages, ports.Recent, RenderMarkdown),
		editorView:  editor.NewView(s, ports.Pages),
		historyView: history.NewView(s, km, ports.Pages),
		searchView:  search.NewView(s, km, ports.Search),
		adminView:   admin.NewView(s, km, ports.Admin),
		currentView: messages.ViewLogin,
	}, nil
}

// WithContext sets the context for the app and all views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.treeView.WithContext(ctx)
	a.pageView.WithContext(ctx)
	a.editorView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.adminView.WithContext(ctx)
	return a
}

// SetUser marks a session as already established, skipping the login
// form. Used when a stored token resumed successfully.
func (a *App) SetUser(user *domain.User) {
	a.user = user
	a.menuView.SetUser(user.Username, user.IsAdmin())
	a.statusBar.SetUsername(user.Username)
	a.currentView = messages.ViewMenu
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("wiki"),
		a.loginView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.loginView.SetDimensions(msg.Width, msg.Height)
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.treeView.SetDimensions(msg.Width, msg.Height)
		a.pageView.SetDimensions(msg.Width, msg.Height)
		a.editorView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.adminView.SetDimensions(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.Type == tea.KeyEsc {
			return a.handleEscape(msg)
		}
		return a.forwardKey(msg)

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err == nil && msg.User != nil {
			a.user = msg.User
			a.menuView.SetUser(msg.User.Username, msg.User.IsAdmin())
			a.statusBar.SetUsername(msg.User.Username)
			a.currentView = messages.ViewMenu
		}
		return a, cmd

	case messages.SessionEnded:
		a.user = nil
		a.menuView.SetUser("", false)
		a.statusBar.SetUsername("")
		a.loginView.Reset()
		a.currentView = messages.ViewLogin
		session := a.ports.Session
		return a, tea.Batch(a.loginView.Init(), func() tea.Msg {
			_ = session.Logout()
			return nil
		})

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.TreeLoaded:
		a.treeView, cmd = a.treeView.Update(msg)
		return a, cmd

	case messages.PageSelected:
		a.currentView = messages.ViewPage
		return a, a.pageView.SetPage(msg)

	case messages.PageLoaded, messages.CollaboratorsLoaded,
		messages.LikesLoaded, messages.LikeToggled:
		a.pageView, cmd = a.pageView.Update(msg)
		return a, cmd

	case messages.EditRequested:
		a.editorView.Open(msg)
		a.currentView = messages.ViewEditor
		return a, a.editorView.Init()

	case messages.PageSaved:
		a.editorView, cmd = a.editorView.Update(msg)
		if msg.Err == nil && msg.Page != nil {
			a.currentView = messages.ViewPage
			return a, tea.Batch(cmd, a.pageView.SetPage(messages.PageSelected{ID: msg.Page.ID}))
		}
		return a, cmd

	case messages.PageDeleted:
		a.treeView, cmd = a.treeView.Update(msg)
		a.currentView = messages.ViewTree
		if msg.Err == nil && a.ports.Recent != nil {
			recent := a.ports.Recent
			ctx := a.ctx
			pageID := msg.PageID
			return a, tea.Batch(cmd, func() tea.Msg {
				_ = recent.Forget(ctx, pageID)
				return nil
			})
		}
		return a, cmd

	case messages.HistoryRequested:
		a.currentView = messages.ViewHistory
		return a, a.historyView.Open(msg)

	case messages.HistoryLoaded, messages.DiffComputed:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.VersionRestored:
		a.historyView, cmd = a.historyView.Update(msg)
		if msg.Err == nil && msg.Page != nil {
			a.currentView = messages.ViewPage
			return a, tea.Batch(cmd, a.pageView.SetPage(messages.PageSelected{ID: msg.Page.ID}))
		}
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.UsersLoaded, messages.UserBlockToggled:
		a.adminView, cmd = a.adminView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	return a.forward(msg)
}

// handleEscape navigates back one level from the active view.
func (a *App) handleEscape(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.currentView {
	case messages.ViewLogin:
		// Browse as guest
		a.user = nil
		a.menuView.SetUser("", false)
		a.currentView = messages.ViewMenu
		return a, nil

	case messages.ViewHistory:
		if a.historyView.InDiff() {
			return a.forwardKey(msg)
		}
		a.currentView = messages.ViewPage
		return a, nil

	case messages.ViewPage:
		a.currentView = messages.ViewTree
		return a, nil

	case messages.ViewEditor:
		if a.editorView.Editing() != nil {
			a.currentView = messages.ViewPage
		} else {
			a.currentView = messages.ViewTree
		}
		return a, nil

	case messages.ViewTree, messages.ViewSearch, messages.ViewAdmin, messages.ViewHelp:
		a.currentView = messages.ViewMenu
		return a, nil

	case messages.ViewMenu:
		return a, nil
	}

	return a, nil
}

// switchView activates a view, initialising it where needed.
func (a *App) switchView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view
	a.statusBar.Clear()

	switch view {
	case messages.ViewTree:
		a.statusBar.SetHints(a.keymap.TreeHelp())
	case messages.ViewPage:
		a.statusBar.SetHints(a.keymap.PageHelp())
	default:
		a.statusBar.SetHints(nil)
	}

	switch view {
	case messages.ViewLogin:
		a.loginView.Reset()
		return a, a.loginView.Init()
	case messages.ViewTree:
		return a, a.treeView.Init()
	case messages.ViewSearch:
		a.searchView.Reset()
		return a, a.searchView.Init()
	case messages.ViewAdmin:
		return a, a.adminView.Init()
	case messages.ViewMenu, messages.ViewPage, messages.ViewEditor,
		messages.ViewHistory, messages.ViewHelp:
		// No special initialisation
	}
	return a, nil
}

// forwardKey sends a key message to the active view.
func (a *App) forwardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	return a.forward(msg)
}

// forward sends a message to the active view.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewTree:
		a.treeView, cmd = a.treeView.Update(msg)
	case messages.ViewPage:
		a.pageView, cmd = a.pageView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewAdmin:
		a.adminView, cmd = a.adminView.Update(msg)
	case messages.ViewHelp:
		// Help view is static
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewLogin:
		body = a.loginView.View()
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewTree:
		body = a.treeView.View()
	case messages.ViewPage:
		body = a.pageView.View()
	case messages.ViewEditor:
		body = a.editorView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewSearch:
		body = a.searchView.View()
	case messages.ViewAdmin:
		body = a.adminView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the keybindings view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Pages:
  enter       Open page
  n           New page
  e           Edit page
  d           Delete page
  m           Toggle my pages
  l           Like / unlike
  h           Version history
  r           Restore version

Search:
  (type)      Enter search query
  enter       Submit search / open result
  tab         Switch focus

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// User returns the signed-in user, or nil for a guest.
func (a *App) User() *domain.User {
	return a.user
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
