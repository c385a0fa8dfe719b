package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Browse and edit wiki pages",
}

var (
	pageListMine bool
	pageListJSON bool
)

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accessible pages as a tree",
	RunE:  runPageList,
}

var pageGetJSON bool

var pageGetCmd = &cobra.Command{
	Use:   "get [id-or-slug]",
	Short: "Show a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageGet,
}

var (
	pageCreateTitle   string
	pageCreateContent string
	pageCreateFile    string
	pageCreateParent  int64
	pageCreatePublic  bool
)

var pageCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a page",
	Long: `Create a page.

Content comes from --content, from a file via --file, or from stdin when
neither is given. A parent makes the page a child in the tree.`,
	RunE: runPageCreate,
}

var (
	pageUpdateTitle   string
	pageUpdateContent string
	pageUpdateFile    string
	pageUpdateComment string
	pageUpdatePublic  string
)

var pageUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a page",
	Long: `Update a page's title, content or visibility.

The server snapshots the previous content as a new version before the
change; use --comment to label that version.`,
	Args: cobra.ExactArgs(1),
	RunE: runPageUpdate,
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageDelete,
}

func init() {
	pageListCmd.Flags().BoolVar(&pageListMine, "mine", false, "only pages you authored")
	pageListCmd.Flags().BoolVar(&pageListJSON, "json", false, "output as JSON")

	pageGetCmd.Flags().BoolVar(&pageGetJSON, "json", false, "output as JSON")

	pageCreateCmd.Flags().StringVarP(&pageCreateTitle, "title", "t", "", "page title (required)")
	pageCreateCmd.Flags().StringVarP(&pageCreateContent, "content", "c", "", "Markdown content")
	pageCreateCmd.Flags().StringVarP(&pageCreateFile, "file", "f", "", "read content from file")
	pageCreateCmd.Flags().Int64Var(&pageCreateParent, "parent", 0, "parent page ID (0 for a root page)")
	pageCreateCmd.Flags().BoolVar(&pageCreatePublic, "public", false, "make the page readable without login")
	_ = pageCreateCmd.MarkFlagRequired("title")

	pageUpdateCmd.Flags().StringVarP(&pageUpdateTitle, "title", "t", "", "new title (required)")
	pageUpdateCmd.Flags().StringVarP(&pageUpdateContent, "content", "c", "", "new Markdown content")
	pageUpdateCmd.Flags().StringVarP(&pageUpdateFile, "file", "f", "", "read content from file")
	pageUpdateCmd.Flags().StringVarP(&pageUpdateComment, "comment", "m", "", "version comment for the snapshot")
	pageUpdateCmd.Flags().StringVar(&pageUpdatePublic, "public", "", "change visibility: true or false")
	_ = pageUpdateCmd.MarkFlagRequired("title")

	pageCmd.AddCommand(pageListCmd)
	pageCmd.AddCommand(pageGetCmd)
	pageCmd.AddCommand(pageCreateCmd)
	pageCmd.AddCommand(pageUpdateCmd)
	pageCmd.AddCommand(pageDeleteCmd)
	rootCmd.AddCommand(pageCmd)
}

func runPageList(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	forest, err := pageService.Tree(cmd.Context(), pageListMine)
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}

	if pageListJSON {
		return printJSON(cmd, forest)
	}

	if len(forest) == 0 {
		cmd.Println("No pages.")
		return nil
	}
	for _, root := range forest {
		printPageNode(cmd, root, 0)
	}
	return nil
}

func printPageNode(cmd *cobra.Command, page *domain.Page, depth int) {
	indent := strings.Repeat("  ", depth)
	visibility := ""
	if !page.IsPublic {
		visibility = " [private]"
	}
	cmd.Printf("%s- %s (#%d, %s)%s\n", indent, page.Title, page.ID, page.Slug, visibility)
	for _, child := range page.Children {
		printPageNode(cmd, child, depth+1)
	}
}

func runPageGet(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	ctx := cmd.Context()
	page, err := pageService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}

	if recentService != nil {
		if err := recentService.Record(ctx, page.ID); err != nil {
			// A failed visit record must not break the read path.
			cmd.PrintErrf("warning: recording visit: %v\n", err)
		}
	}

	if pageGetJSON {
		return printJSON(cmd, page)
	}

	cmd.Printf("# %s\n", page.Title)
	cmd.Printf("id: %d  slug: %s  author: %s  public: %t  likes: %d\n",
		page.ID, page.Slug, page.Author.Username, page.IsPublic, page.LikeCount)
	cmd.Printf("updated: %s\n", page.UpdatedAt.Format("2006-01-02 15:04"))
	cmd.Println()
	cmd.Println(page.Content)
	return nil
}

func runPageCreate(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	content, err := resolveContent(cmd, pageCreateContent, pageCreateFile)
	if err != nil {
		return err
	}

	input := domain.CreatePageInput{
		Title:    pageCreateTitle,
		Content:  content,
		IsPublic: pageCreatePublic,
	}
	if pageCreateParent != 0 {
		parent := pageCreateParent
		input.ParentID = &parent
	}

	page, err := pageService.Create(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}

	cmd.Printf("Created page #%d (%s)\n", page.ID, page.Slug)
	return nil
}

func runPageUpdate(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	id, err := parsePageID(args[0])
	if err != nil {
		return err
	}

	content, err := resolveContent(cmd, pageUpdateContent, pageUpdateFile)
	if err != nil {
		return err
	}

	input := domain.UpdatePageInput{
		Title:   pageUpdateTitle,
		Content: content,
	}
	if pageUpdateComment != "" {
		comment := pageUpdateComment
		input.VersionComment = &comment
	}
	if pageUpdatePublic != "" {
		public, err := strconv.ParseBool(pageUpdatePublic)
		if err != nil {
			return fmt.Errorf("--public must be true or false: %w", err)
		}
		input.IsPublic = &public
	}

	page, err := pageService.Update(cmd.Context(), id, input)
	if err != nil {
		return fmt.Errorf("updating page: %w", err)
	}

	cmd.Printf("Updated page #%d (%s)\n", page.ID, page.Slug)
	return nil
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	id, err := parsePageID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := pageService.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}

	if recentService != nil {
		if err := recentService.Forget(ctx, id); err != nil {
			cmd.PrintErrf("warning: pruning recent list: %v\n", err)
		}
	}

	cmd.Printf("Deleted page #%d\n", id)
	return nil
}

// resolveContent picks the content source: flag, file, or stdin.
func resolveContent(cmd *cobra.Command, flagValue, filePath string) (string, error) {
	if flagValue != "" && filePath != "" {
		return "", errors.New("--content and --file are mutually exclusive")
	}
	if flagValue != "" {
		return flagValue, nil
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", filePath, err)
		}
		return string(data), nil
	}

	// Stdin only when piped; an interactive terminal would just hang.
	if file, ok := cmd.InOrStdin().(*os.File); ok {
		info, err := file.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func parsePageID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("page ID must be numeric, got %q", arg)
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
