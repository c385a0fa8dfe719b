// Package cli implements the cobra command tree for the wiki client.
//
// Commands hold no business logic; they parse arguments, call the driving
// ports, and print. Services are injected once from main via SetServices,
// so tests can swap in mocks.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sovatiano/wiki-app/internal/core/ports/driven"
	"github.com/Sovatiano/wiki-app/internal/core/ports/driving"
	"github.com/Sovatiano/wiki-app/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// Injected services. Nil until SetServices runs; command handlers check
// for nil and fail with a clear message rather than panic.
var (
	sessionService driving.SessionService
	pageService    driving.PageService
	searchService  driving.SearchService
	adminService   driving.AdminService
	recentService  driving.RecentService
	configStore    driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wiki",
	Short: "Terminal client for a collaborative wiki",
	Long: `wiki is a terminal client for a collaborative wiki server.

Browse the page tree, read and edit Markdown pages, inspect version
history with line diffs, manage collaborators and likes, and search -
all from the command line or the interactive TUI (wiki tui).

Connect to a server first:
  wiki config set server.url https://wiki.example.com
  wiki login`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services groups everything the command handlers depend on.
type Services struct {
	Session driving.SessionService
	Pages   driving.PageService
	Search  driving.SearchService
	Admin   driving.AdminService
	Recent  driving.RecentService
	Config  driven.ConfigStore
}

// SetServices injects the service implementations. Called once from main
// after wiring, before Execute.
func SetServices(s Services) {
	sessionService = s.Session
	pageService = s.Pages
	searchService = s.Search
	adminService = s.Admin
	recentService = s.Recent
	configStore = s.Config
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context. Command
// handlers see it via cmd.Context(), so a SIGINT cancels in-flight
// requests.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
