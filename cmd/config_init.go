package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/PolarWolf314/keyblob/internal/configs"
	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Creates the config file with the default settings: the embedded key blob,
mask 0x53, and auditing enabled.

An existing config file is left alone unless --force is given, so this also
works to reset a broken config.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		spinner, cleanup := startSpinner(cmd, "Writing config...")
		defer cleanup()

		path := configPath
		if path == "" {
			paths, err := configs.ResolvePaths()
			if err != nil {
				return fail(spinner, "resolve the config path", err)
			}
			path = paths.ConfigFile()
		}
		Logger.Debugf("Config path: %s", path)

		if _, err := os.Stat(path); err == nil && !configInitForce {
			spinner.FinalMSG = ui.FailureLine("Config file "+ui.Path.Sprint(path)+" already exists",
				"Use "+ui.Flag.Sprint("--force")+" to overwrite it")
			return reportedError{fmt.Errorf("%w: config file %s already exists", kerrors.ErrInvalidConfig, path)}
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fail(spinner, "write the config", err)
		}

		if err := configs.Save(path, configs.Default()); err != nil {
			return fail(spinner, "write the config", err)
		}

		spinner.FinalMSG = ui.SuccessLine("Wrote default config to " + ui.Path.Sprint(path))
		return nil
	},
}
