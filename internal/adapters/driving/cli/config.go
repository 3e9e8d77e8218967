package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repopulse/internal/adapters/driving/report"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change the stored configuration.

Lists are comma-separated, for example:
  repopulse config set inclusions 'alm*,web*'`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configured value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settable keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Printf("No configuration set. Config file: %s\n", configStore.Path())
		return nil
	}

	values := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := configStore.Get(k); ok {
			values[k] = v
		}
	}
	newPrinter(cmd).ConfigValues(values)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Println(report.FormatValue(args[0], value))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	stored, _ := configStore.Get(key)
	cmd.Printf("%s = %s\n", key, report.FormatValue(key, stored))
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	cmd.Println(strings.Join(settingsService.Keys(), "\n"))
	return nil
}
