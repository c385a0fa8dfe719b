package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search pages by title and content",
	Long: `Performs a full-text search across every page you can read.
Matching terms in the results are wrapped in <mark> tags by the server;
the plain renderer strips them.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := stripMarks(results[i].Highlight.Title)
		if title == "" {
			title = results[i].Page.Title
		}
		cmd.Printf("  [%d] %s (#%d)\n", i+1, title, results[i].Page.ID)
		if excerpt := stripMarks(results[i].Highlight.Content); excerpt != "" {
			cmd.Printf("      %s\n", excerpt)
		}
		cmd.Println()
	}

	return nil
}

// stripMarks removes the server's <mark> highlight tags for plain output.
func stripMarks(s string) string {
	s = strings.ReplaceAll(s, "<mark>", "")
	return strings.ReplaceAll(s, "</mark>", "")
}
