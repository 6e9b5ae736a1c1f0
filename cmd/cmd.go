package cmd

import (
	"errors"

	"github.com/PolarWolf314/keyblob/internal/configs"
	logger "github.com/PolarWolf314/keyblob/internal/logging"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	// loadedConfig is set by the group PersistentPreRunE.
	loadedConfig *configs.Config
)

// skipConfigAnnotation marks commands that must run even when the config
// file is missing or invalid.
const skipConfigAnnotation = "keyblob/skip-config"

// reportedError marks an error whose message has already been shown to
// the user through a spinner final message.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// IsReported reports whether err was already printed for the user.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// addGroupFlags registers the shared flags and pre-run hook on a top-level
// command.
func addGroupFlags(c *cobra.Command) {
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	c.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	c.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/keyblob/config.toml)")
	c.PersistentPreRunE = initCommand
}

func initCommand(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
		Out:     cmd.ErrOrStderr(),
		Err:     cmd.ErrOrStderr(),
	}
	Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	config, err := configs.Load(configPath)
	if err != nil {
		cmd.SilenceUsage = true
		return Logger.ErrorfAndReturn("%w", err)
	}
	loadedConfig = config
	Logger.Debugf("Key source: %s, mask %#02x, required=%t", config.BlobOrigin(), config.MaskByte(), config.KeySource.Required)
	return nil
}

func runtime() workflows.Runtime {
	return workflows.Runtime{Config: loadedConfig, Logger: Logger}
}

// Commands returns the top-level commands for the root command.
func Commands() []*cobra.Command {
	return []*cobra.Command{CipherCmd, BlobCmd, ConfigCmd, LogCmd}
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	loadedConfig = nil
	Logger = logger.Logger{}
	resetCipherState()
	resetBlobState()
	resetConfigState()
	resetLogCommandState()
	for _, c := range Commands() {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears Changed on every flag below c to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	c.PersistentFlags().VisitAll(func(flag *pflag.Flag) { flag.Changed = false })
	c.Flags().VisitAll(func(flag *pflag.Flag) { flag.Changed = false })
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
