package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PolarWolf314/keyblob/internal/configs"
	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

// configShowOutput is the effective configuration. An inline blob is
// reported by length only.
type configShowOutput struct {
	ConfigFile string `json:"config_file"`
	KeySource  struct {
		Origin    string `json:"origin"`
		BlobBytes int    `json:"blob_bytes,omitempty"`
		BlobFile  string `json:"blob_file,omitempty"`
		Mask      int    `json:"mask"`
		Required  bool   `json:"required"`
	} `json:"key_source"`
	Audit struct {
		Enabled bool   `json:"enabled"`
		Path    string `json:"path,omitempty"`
	} `json:"audit"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration in effect: the config file values on top of the
defaults. Inline blobs are never printed.

Examples:
  keyblob config show
  keyblob config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		config := loadedConfig
		if config == nil {
			config = configs.Default()
		}

		out, err := buildConfigShowOutput(config)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve config paths: %v", err)
		}

		if configShowJSON {
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		printConfigShow(cmd.OutOrStdout(), out)
		return nil
	},
}

func buildConfigShowOutput(config *configs.Config) (configShowOutput, error) {
	var out configShowOutput

	out.ConfigFile = configPath
	if out.ConfigFile == "" {
		paths, err := configs.ResolvePaths()
		if err != nil {
			return out, err
		}
		out.ConfigFile = paths.ConfigFile()
	}

	out.KeySource.Origin = config.BlobOrigin()
	out.KeySource.BlobBytes = len(config.KeySource.Blob)
	out.KeySource.BlobFile = config.KeySource.BlobFile
	out.KeySource.Mask = config.KeySource.Mask
	out.KeySource.Required = config.KeySource.Required

	auditPath, err := config.AuditPath()
	if err != nil {
		return out, err
	}
	out.Audit.Enabled = config.Audit.Enabled
	out.Audit.Path = auditPath
	return out, nil
}

func printConfigShow(w io.Writer, out configShowOutput) {
	fmt.Fprintln(w, ui.Info.Sprint("Configuration")+" ("+ui.Path.Sprint(out.ConfigFile)+"):")
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Info.Sprint("[key_source]"))
	fmt.Fprintf(w, "  %-10s %s\n", "origin:", ui.Highlight.Sprint(out.KeySource.Origin))
	if out.KeySource.BlobBytes > 0 {
		fmt.Fprintf(w, "  %-10s %s\n", "blob:", ui.Muted.Sprintf("%d characters", out.KeySource.BlobBytes))
	}
	if out.KeySource.BlobFile != "" {
		fmt.Fprintf(w, "  %-10s %s\n", "blob_file:", ui.Path.Sprint(out.KeySource.BlobFile))
	}
	fmt.Fprintf(w, "  %-10s %#02x\n", "mask:", out.KeySource.Mask)
	fmt.Fprintf(w, "  %-10s %t\n", "required:", out.KeySource.Required)

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Info.Sprint("[audit]"))
	fmt.Fprintf(w, "  %-10s %t\n", "enabled:", out.Audit.Enabled)
	if out.Audit.Path != "" {
		fmt.Fprintf(w, "  %-10s %s\n", "path:", ui.Path.Sprint(out.Audit.Path))
	}
}
