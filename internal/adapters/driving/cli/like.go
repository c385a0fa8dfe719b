package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sovatiano/wiki-app/internal/adapters/driven/config/file"
)

var likeCmd = &cobra.Command{
	Use:   "like [page-id]",
	Short: "Like a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runLike,
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike [page-id]",
	Short: "Remove your like from a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlike,
}

var popularLimit int

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most liked pages",
	RunE:  runPopular,
}

func init() {
	popularCmd.Flags().IntVarP(&popularLimit, "limit", "n", 5, "maximum number of pages")

	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(unlikeCmd)
	rootCmd.AddCommand(popularCmd)
}

func runLike(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pageID, err := parsePageID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := pageService.Like(ctx, pageID); err != nil {
		return fmt.Errorf("liking page: %w", err)
	}

	status, err := pageService.Likes(ctx, pageID)
	if err != nil {
		cmd.Printf("Liked page #%d\n", pageID)
		return nil
	}
	cmd.Printf("Liked page #%d (%d likes)\n", pageID, status.LikeCount)
	return nil
}

func runUnlike(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pageID, err := parsePageID(args[0])
	if err != nil {
		return err
	}

	if err := pageService.Unlike(cmd.Context(), pageID); err != nil {
		return fmt.Errorf("unliking page: %w", err)
	}

	cmd.Printf("Removed like from page #%d\n", pageID)
	return nil
}

func runPopular(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	limit := popularLimit
	if !cmd.Flags().Changed("limit") && configStore != nil {
		if configured := configStore.GetInt(file.KeyPopularLimit); configured > 0 {
			limit = configured
		}
	}

	pages, err := pageService.Popular(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("fetching popular pages: %w", err)
	}

	if len(pages) == 0 {
		cmd.Println("No pages.")
		return nil
	}

	for i, page := range pages {
		cmd.Printf("%d. %s (#%d) - %d likes\n", i+1, page.Title, page.ID, page.LikeCount)
	}
	return nil
}
