package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persisted settings",
	Long: `View and change settings persisted in the TOML settings file.
Values set here override nothing by themselves; they are read by tools
and scripts that prefer a settings file over environment variables.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting value",
	Long: `Set a setting and persist it immediately. Values parse as bool or
integer when possible, otherwise they are stored as strings.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if err := initSettingsStore(); err != nil {
		return err
	}

	keys := keysOf(settingsStore)
	if len(keys) == 0 {
		cmd.Println("No settings stored.")
		return nil
	}

	for _, key := range keys {
		val, _ := settingsStore.Get(key)
		cmd.Printf("%s = %v\n", key, val)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if err := initSettingsStore(); err != nil {
		return err
	}

	val, ok := settingsStore.Get(args[0])
	if !ok {
		return fmt.Errorf("setting %q not found", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := initSettingsStore(); err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if err := settingsStore.Set(key, parseValue(raw)); err != nil {
		return fmt.Errorf("save setting: %w", err)
	}
	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if err := initSettingsStore(); err != nil {
		return err
	}

	cmd.Println(settingsStore.Path())
	return nil
}

// parseValue interprets a CLI argument as bool, int or string.
func parseValue(raw string) any {
	// Ints first: ParseBool also accepts "1" and "0".
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// keyLister is implemented by stores that can enumerate their keys.
type keyLister interface {
	Keys() []string
}

func keysOf(store any) []string {
	if l, ok := store.(keyLister); ok {
		return l.Keys()
	}
	return nil
}
