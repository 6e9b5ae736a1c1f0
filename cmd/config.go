package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage keyblob configuration",
	Long: `Provides commands for creating and viewing the keyblob config file.

The config file selects the key blob ([key_source]) and controls the audit
log ([audit]). Without a config file the embedded default key is used with
mask 0x53.

Examples:
  # Write a config file with the defaults
  keyblob config init

  # Show the effective configuration
  keyblob config show

  # Use a different config file
  keyblob config show --config ./keyblob.toml`,
}

func init() {
	addGroupFlags(ConfigCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

func resetConfigState() {
	resetConfigInitState()
	resetConfigShowState()
}
