package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Sovatiano/wiki-app/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI provides a visual interface for browsing the page tree, reading
rendered Markdown, editing pages, inspecting version history with line
diffs, and searching - with keyboard navigation throughout.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open / Select
  Esc      - Back / Cancel
  e, n, d  - Edit, new, delete page
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Session: sessionService,
		Pages:   pageService,
		Search:  searchService,
		Admin:   adminService,
		Recent:  recentService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	// Skip the login form when a stored session resumed at startup.
	if sessionService != nil {
		if session := sessionService.Current(); session.Authenticated() {
			app.SetUser(session.User)
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
