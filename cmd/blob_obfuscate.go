package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/keyblob/internal/configs"
	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/PolarWolf314/keyblob/internal/utils"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	obfuscateIn           string
	obfuscateOut          string
	obfuscateMask         int
	obfuscatePublicOnly   bool
	obfuscateUpdateConfig bool
)

func init() {
	blobObfuscateCmd.Flags().StringVar(&obfuscateIn, "in", "-", "key document to obfuscate, or - for stdin")
	blobObfuscateCmd.Flags().StringVarP(&obfuscateOut, "out", "o", "", "write the blob to this file (mode 0600)")
	blobObfuscateCmd.Flags().IntVar(&obfuscateMask, "mask", -1, "XOR mask 0-255 (default: key_source.mask)")
	blobObfuscateCmd.Flags().BoolVar(&obfuscatePublicOnly, "public-only", false, "drop private components, producing an encrypt-only blob")
	blobObfuscateCmd.Flags().BoolVar(&obfuscateUpdateConfig, "update-config", false, "point key_source at the new blob in the config file")
}

func resetBlobObfuscateState() {
	obfuscateIn = "-"
	obfuscateOut = ""
	obfuscateMask = -1
	obfuscatePublicOnly = false
	obfuscateUpdateConfig = false
}

var blobObfuscateCmd = &cobra.Command{
	Use:   "obfuscate",
	Short: "Convert an RSA key document into an obfuscated blob",
	Long: `Reads an RSA key as <RSAKeyValue> XML, PEM (PKCS#1, PKCS#8 or PKIX) or OpenSSH
and prints the obfuscated blob.

Passphrase-protected OpenSSH keys prompt for the passphrase when a terminal
is available.

With --update-config the config file is rewritten to use the new blob:
key_source.blob_file when --out is given, key_source.blob otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting obfuscate command")
		Logger.Debugf("Flags: in=%s, out=%s, mask=%d, public-only=%t, update-config=%t",
			obfuscateIn, obfuscateOut, obfuscateMask, obfuscatePublicOnly, obfuscateUpdateConfig)

		spinner, cleanup := startSpinner(cmd, "Obfuscating key...")
		defer cleanup()

		if obfuscateMask < -1 || obfuscateMask > 0xff {
			return fail(spinner, "obfuscate", fmt.Errorf("%w: --mask must be between 0 and 255, got %d",
				kerrors.ErrInvalidConfig, obfuscateMask))
		}

		keyData, err := readFileOrStdin(cmd, obfuscateIn)
		if err != nil {
			return fail(spinner, "obfuscate", err)
		}
		defer clear(keyData)

		opts := workflows.ObfuscateOptions{
			Runtime:    runtime(),
			KeyData:    keyData,
			PublicOnly: obfuscatePublicOnly,
			OutputPath: obfuscateOut,
		}
		if obfuscateMask >= 0 {
			mask := byte(obfuscateMask)
			opts.Mask = &mask
		}

		result, err := workflows.Obfuscate(cmd.Context(), opts)
		// Prompt only when attached to the process stdin.
		if errors.Is(err, kerrors.ErrPassphraseRequired) && cmd.InOrStdin() == os.Stdin {
			spinning := spinner.Active()
			spinner.Stop()
			passphrase, promptErr := utils.ReadPassphrase("Enter passphrase for key: ")
			if promptErr != nil {
				return fail(spinner, "obfuscate", promptErr)
			}
			defer clear(passphrase)
			if spinning {
				spinner.Start()
			}

			opts.Passphrase = passphrase
			result, err = workflows.Obfuscate(cmd.Context(), opts)
		}
		if err != nil {
			return fail(spinner, "obfuscate", err)
		}

		kind := "private"
		if !result.HasPrivate {
			kind = "public-only"
		}
		summary := fmt.Sprintf("Obfuscated %d-bit %s key %s with mask %#02x",
			result.KeyBits, kind, ui.Fingerprint.Sprint(ui.ShortFingerprint(result.KeyFingerprint)), result.Mask)
		if result.OutputPath != "" {
			summary += " into " + ui.Path.Sprint(result.OutputPath)
		}

		if obfuscateUpdateConfig {
			path, err := updateKeySource(result)
			if err != nil {
				return fail(spinner, "update config", err)
			}
			summary += "\n  config " + ui.Path.Sprint(path) + " now uses this blob"
		}

		spinner.FinalMSG = ui.SuccessLine(summary)
		cleanup()
		if result.OutputPath == "" {
			writeOutput(cmd.OutOrStdout(), result.Blob)
		}
		return nil
	},
}

// updateKeySource rewrites the loaded config to use the new blob and
// returns the path it was saved to.
func updateKeySource(result *workflows.ObfuscateResult) (string, error) {
	config := loadedConfig
	if config == nil {
		config = configs.Default()
	}

	if result.OutputPath != "" {
		config.KeySource.BlobFile = result.OutputPath
		config.KeySource.Blob = ""
	} else {
		config.KeySource.Blob = result.Blob
		config.KeySource.BlobFile = ""
	}
	config.KeySource.Mask = int(result.Mask)

	path := configPath
	if path == "" {
		paths, err := configs.ResolvePaths()
		if err != nil {
			return "", err
		}
		path = paths.ConfigFile()
	}
	if err := configs.Save(path, config); err != nil {
		return "", err
	}
	Logger.Infof("Updated key_source in %s", path)
	return path, nil
}
