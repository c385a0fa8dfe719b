package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List your recently visited pages",
	Long: `Shows the pages you opened most recently, newest first.
The list is kept locally per account and holds at most five entries.`,
	RunE: runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	if recentService == nil {
		return errors.New("recent service not configured")
	}

	ctx := cmd.Context()
	ids, err := recentService.List(ctx)
	if err != nil {
		return fmt.Errorf("loading recent pages: %w", err)
	}

	if len(ids) == 0 {
		cmd.Println("No recent pages.")
		return nil
	}

	for i, id := range ids {
		label := "#" + strconv.FormatInt(id, 10)
		if pageService != nil {
			// Best effort; the page may have been deleted on the server.
			if page, err := pageService.Get(ctx, strconv.FormatInt(id, 10)); err == nil {
				label = fmt.Sprintf("%s (#%d)", page.Title, page.ID)
			}
		}
		cmd.Printf("%d. %s\n", i+1, label)
	}

	return nil
}
