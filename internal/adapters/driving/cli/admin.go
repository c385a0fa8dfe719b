package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer user accounts",
	Long: `Manage user accounts. Every subcommand requires an admin account;
the server rejects calls from regular users.`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all registered users",
	RunE:  runAdminUsers,
}

var adminBlockCmd = &cobra.Command{
	Use:   "block [user-id]",
	Short: "Deactivate a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminBlock,
}

var adminUnblockCmd = &cobra.Command{
	Use:   "unblock [user-id]",
	Short: "Reactivate a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminUnblock,
}

func init() {
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminBlockCmd)
	adminCmd.AddCommand(adminUnblockCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminUsers(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	users, err := adminService.Users(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	if len(users) == 0 {
		cmd.Println("No users.")
		return nil
	}

	for _, user := range users {
		status := "active"
		if !user.IsActive {
			status = "blocked"
		}
		cmd.Printf("#%d  %s  <%s>  %s  %s\n", user.ID, user.Username, user.Email, user.Role, status)
	}

	return nil
}

func runAdminBlock(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	if err := adminService.Block(cmd.Context(), userID); err != nil {
		return fmt.Errorf("blocking user: %w", err)
	}

	cmd.Printf("Blocked user #%d\n", userID)
	return nil
}

func runAdminUnblock(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	if err := adminService.Unblock(cmd.Context(), userID); err != nil {
		return fmt.Errorf("unblocking user: %w", err)
	}

	cmd.Printf("Unblocked user #%d\n", userID)
	return nil
}

func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("user ID must be numeric, got %q", arg)
	}
	return id, nil
}
