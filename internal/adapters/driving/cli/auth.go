package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the wiki server",
	Long: `Authenticate against the configured wiki server.

Prompts for the username and password when not given as flags. The
bearer token is persisted, so the session survives restarts until you
log out or the server rejects the token.`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account on the configured wiki server.

Registration does not log you in; run 'wiki login' afterwards.`,
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted; prefer the prompt)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	username := loginUsername
	if username == "" {
		var err error
		username, err = promptLine(cmd, reader, "Username: ")
		if err != nil {
			return err
		}
	}

	password := loginPassword
	if password == "" {
		var err error
		password, err = promptPassword(cmd, reader, "Password: ")
		if err != nil {
			return err
		}
	}

	user, err := sessionService.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s", user.Username)
	if user.IsAdmin() {
		cmd.Print(" (admin)")
	}
	cmd.Println()
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	username, err := promptLine(cmd, reader, "Username: ")
	if err != nil {
		return err
	}
	email, err := promptLine(cmd, reader, "Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword(cmd, reader, "Password: ")
	if err != nil {
		return err
	}

	if err := sessionService.Register(cmd.Context(), username, email, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	cmd.Println("Account created. Run 'wiki login' to sign in.")
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	sess := sessionService.Current()
	if !sess.Authenticated() {
		cmd.Println("Not logged in.")
		return nil
	}

	cmd.Printf("%s <%s> role=%s\n", sess.User.Username, sess.User.Email, sess.User.Role)
	return nil
}

// promptLine reads one trimmed line from the shared reader. The reader
// must be shared across prompts in a command run, since bufio reads ahead.
func promptLine(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	cmd.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read for pipes and tests.
func promptPassword(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	cmd.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
