package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history [page-id]",
	Short: "List a page's versions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var diffCmd = &cobra.Command{
	Use:   "diff [page-id] [older-version] [newer-version]",
	Short: "Show the line diff between two versions",
	Long: `Show the line-by-line diff between two versions of a page.

Lines are compared by position: line 1 against line 1, line 2 against
line 2, and so on. An older version of 0 diffs against the empty text,
rendering a first version as pure additions.`,
	Args: cobra.ExactArgs(3),
	RunE: runDiff,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [page-id] [version-id]",
	Short: "Restore a historical version",
	Long: `Restore a page to a historical version.

The pre-restore content is snapshotted as a version of its own first,
so a restore never loses anything.`,
	Args: cobra.ExactArgs(2),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pageID, err := parsePageID(args[0])
	if err != nil {
		return err
	}

	versions, err := pageService.History(cmd.Context(), pageID)
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}

	if len(versions) == 0 {
		cmd.Println("No versions yet.")
		return nil
	}

	for _, v := range versions {
		comment := ""
		if v.VersionComment != nil && *v.VersionComment != "" {
			comment = " - " + *v.VersionComment
		}
		cmd.Printf("v%d  %s  by %s%s\n",
			v.ID, v.CreatedAt.Format("2006-01-02 15:04"), v.Author.Username, comment)
	}
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pageID, err := parsePageID(args[0])
	if err != nil {
		return err
	}
	olderID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("older version must be numeric (0 for empty), got %q", args[1])
	}
	newerID, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("newer version must be numeric, got %q", args[2])
	}

	lines, err := pageService.DiffVersions(cmd.Context(), pageID, olderID, newerID)
	if err != nil {
		return fmt.Errorf("computing diff: %w", err)
	}

	for _, line := range lines {
		cmd.Println(renderDiffLine(line))
	}
	return nil
}

// renderDiffLine formats one diff line with its conventional prefix.
func renderDiffLine(line domain.DiffLine) string {
	switch line.Kind {
	case domain.DiffAdded:
		return "+ " + line.Text
	case domain.DiffRemoved:
		return "- " + line.Text
	default:
		return "  " + line.Text
	}
}

func runRestore(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pageID, err := parsePageID(args[0])
	if err != nil {
		return err
	}
	versionID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("version ID must be numeric, got %q", args[1])
	}

	page, err := pageService.Restore(cmd.Context(), pageID, versionID)
	if err != nil {
		return fmt.Errorf("restoring version: %w", err)
	}

	cmd.Printf("Restored page #%d to version %d\n", page.ID, versionID)
	return nil
}
