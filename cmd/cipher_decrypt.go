package cmd

import (
	"fmt"

	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
)

var cipherDecryptCmd = &cobra.Command{
	Use:   "decrypt [ciphertext]",
	Short: "Decrypt base64 ciphertext and print the plaintext",
	Long: `Decrypts base64 ciphertext with the private key held in the configured key
blob and prints the recovered text.

The key is unmasked and parsed for this call only and wiped afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		spinner, cleanup := startSpinner(cmd, "Decrypting...")
		defer cleanup()

		ciphertext, err := readInput(cmd, args)
		if err != nil {
			return fail(spinner, "decrypt", err)
		}

		result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
			Runtime:    runtime(),
			Ciphertext: ciphertext,
		})
		if err != nil {
			return fail(spinner, "decrypt", err)
		}

		spinner.FinalMSG = ui.SuccessLine(fmt.Sprintf("Decrypted %d bytes with %d-bit key %s",
			len(result.Plaintext), result.KeyBits, ui.Fingerprint.Sprint(ui.ShortFingerprint(result.KeyFingerprint))))
		cleanup()
		writeOutput(cmd.OutOrStdout(), result.Plaintext)
		return nil
	},
}
