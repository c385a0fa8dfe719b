package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
)

var collabCmd = &cobra.Command{
	Use:   "collab",
	Short: "Manage page collaborators",
	Long: `Manage who can read or edit a private page.

Collaborators get read or write access. The author always has full
access and is never listed as a collaborator. Granting to an existing
collaborator updates their level.`,
}

var collabListCmd = &cobra.Command{
	Use:   "list [page-id]",
	Short: "List a page's collaborators",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollabList,
}

var collabAddCmd = &cobra.Command{
	Use:   "add [page-id] [user-id] [read|write]",
	Short: "Grant a user access to a page",
	Args:  cobra.ExactArgs(3),
	RunE:  runCollabAdd,
}

var collabUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users available as collaborators",
	RunE:  runCollabUsers,
}

func init() {
	collabCmd.AddCommand(collabListCmd)
	collabCmd.AddCommand(collabAddCmd)
	collabCmd.AddCommand(collabUsersCmd)
	rootCmd.AddCommand(collabCmd)
}

func runCollabList(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pageID, err := parsePageID(args[0])
	if err != nil {
		return err
	}

	collaborators, err := pageService.Collaborators(cmd.Context(), pageID)
	if err != nil {
		return fmt.Errorf("fetching collaborators: %w", err)
	}

	if len(collaborators) == 0 {
		cmd.Println("No collaborators.")
		return nil
	}

	for _, c := range collaborators {
		cmd.Printf("%s <%s>  %s\n", c.User.Username, c.User.Email, c.AccessLevel)
	}
	return nil
}

func runCollabAdd(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	pageID, err := parsePageID(args[0])
	if err != nil {
		return err
	}
	userID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("user ID must be numeric, got %q", args[1])
	}
	level := domain.AccessLevel(args[2])
	if !level.Valid() {
		return fmt.Errorf("access level must be read or write, got %q", args[2])
	}

	if err := pageService.AddCollaborator(cmd.Context(), pageID, userID, level); err != nil {
		return fmt.Errorf("adding collaborator: %w", err)
	}

	cmd.Printf("Granted %s access on page #%d to user #%d\n", level, pageID, userID)
	return nil
}

func runCollabUsers(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	users, err := adminService.CollaboratorCandidates(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	for _, u := range users {
		cmd.Printf("#%d  %s <%s>\n", u.ID, u.Username, u.Email)
	}
	return nil
}
