package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sovatiano/wiki-app/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
	Long: `View and change the local client configuration.

Known keys:
  server.url          base URL of the wiki server
  pages.popular_limit default size of the popular pages list
  tui.compact         use the compact TUI layout (true/false)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := []string{file.KeyServerURL, file.KeyPopularLimit, file.KeyTUICompact}
	for _, key := range keys {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("%s = (not set)\n", key)
			continue
		}
		cmd.Printf("%s = %v\n", key, value)
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
