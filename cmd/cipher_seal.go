package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/PolarWolf314/keyblob/internal/utils"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
)

var sealPublicKey string

func init() {
	cipherSealCmd.Flags().StringVar(&sealPublicKey, "public-key", "", "seal to this key document instead of the configured key")
}

var cipherSealCmd = &cobra.Command{
	Use:   "seal [plaintext]",
	Short: "Seal a payload of any size into an envelope",
	Long: `Encrypts a payload of any size with a fresh secretbox key and wraps that key
with RSA PKCS#1 v1.5. The base64 envelope is printed to stdout.

Piped input is sealed byte for byte, apart from one trailing newline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seal command")
		spinner, cleanup := startSpinner(cmd, "Sealing...")
		defer cleanup()

		plaintext, err := readInput(cmd, args)
		if err != nil {
			return fail(spinner, "seal", err)
		}

		opts := workflows.SealOptions{Runtime: runtime(), Plaintext: []byte(plaintext)}
		if sealPublicKey != "" {
			data, err := os.ReadFile(sealPublicKey)
			if err != nil {
				return fail(spinner, "seal", fmt.Errorf("failed to read public key: %w", err))
			}
			opts.PublicKeyData = data
		}

		result, err := workflows.Seal(cmd.Context(), opts)
		if err != nil {
			return fail(spinner, "seal", err)
		}

		spinner.FinalMSG = ui.SuccessLine(fmt.Sprintf("Sealed %s with %d-bit key %s",
			utils.FormatByteCount(len(plaintext)), result.KeyBits, ui.Fingerprint.Sprint(ui.ShortFingerprint(result.KeyFingerprint))))
		cleanup()
		writeOutput(cmd.OutOrStdout(), result.Envelope)
		return nil
	},
}

var cipherOpenCmd = &cobra.Command{
	Use:   "open [envelope]",
	Short: "Open an envelope produced by seal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting open command")
		spinner, cleanup := startSpinner(cmd, "Opening...")
		defer cleanup()

		envelope, err := readInput(cmd, args)
		if err != nil {
			return fail(spinner, "open", err)
		}

		result, err := workflows.Open(cmd.Context(), workflows.OpenOptions{
			Runtime:  runtime(),
			Envelope: envelope,
		})
		if err != nil {
			return fail(spinner, "open", err)
		}

		spinner.FinalMSG = ui.SuccessLine(fmt.Sprintf("Opened %s with %d-bit key %s",
			utils.FormatByteCount(len(result.Plaintext)), result.KeyBits, ui.Fingerprint.Sprint(ui.ShortFingerprint(result.KeyFingerprint))))
		cleanup()
		_, err = cmd.OutOrStdout().Write(result.Plaintext)
		clear(result.Plaintext)
		return err
	},
}
