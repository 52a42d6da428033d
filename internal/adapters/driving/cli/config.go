package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kbase-labs/kbase-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and set configuration values.

Keys:
  sources.normative     Directory with normative acts
  sources.methodology   Directory with methodology documents
  sources.structured    Directory with structured documents
  sources.expertise     Directory with expert opinions
  database.dir          Section database directory
  sessions.dir          Export bundle directory
  templates.path        Prompt templates file`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key not set: %s", args[0])
	}

	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]

	// Source bindings must name a known category and an absolute path,
	// otherwise a later scan silently finds nothing.
	if category, isSource := sourceKey(key); isSource {
		if !category.Known() {
			return fmt.Errorf("unknown category: %s", category)
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
		value = abs
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println(configStore.Path())
	return nil
}

// sourceKey extracts the category from a sources.* key.
func sourceKey(key string) (domain.Category, bool) {
	const prefix = "sources."
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return "", false
	}
	return domain.Category(key[len(prefix):]), true
}
