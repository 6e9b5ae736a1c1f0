package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
)

var encryptPublicKey string

func init() {
	cipherEncryptCmd.Flags().StringVar(&encryptPublicKey, "public-key", "", "encrypt to this key document instead of the configured key")
}

var cipherEncryptCmd = &cobra.Command{
	Use:   "encrypt [plaintext]",
	Short: "Encrypt text and print base64 ciphertext",
	Long: `Encrypts UTF-8 text with RSA PKCS#1 v1.5 and prints the base64 ciphertext.

The plaintext may be at most k-11 bytes, where k is the key size in bytes.
Use --public-key to encrypt to someone else's key (XML, PEM or OpenSSH).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		spinner, cleanup := startSpinner(cmd, "Encrypting...")
		defer cleanup()

		plaintext, err := readInput(cmd, args)
		if err != nil {
			return fail(spinner, "encrypt", err)
		}

		opts := workflows.EncryptOptions{Runtime: runtime(), Plaintext: plaintext}
		if encryptPublicKey != "" {
			data, err := os.ReadFile(encryptPublicKey)
			if err != nil {
				return fail(spinner, "encrypt", fmt.Errorf("failed to read public key: %w", err))
			}
			opts.PublicKeyData = data
		}

		result, err := workflows.Encrypt(cmd.Context(), opts)
		if err != nil {
			return fail(spinner, "encrypt", err)
		}

		spinner.FinalMSG = ui.SuccessLine(fmt.Sprintf("Encrypted %d of %d bytes with %d-bit key %s",
			result.PlaintextBytes, result.Capacity, result.KeyBits, ui.Fingerprint.Sprint(ui.ShortFingerprint(result.KeyFingerprint))))
		cleanup()
		writeOutput(cmd.OutOrStdout(), result.Ciphertext)
		return nil
	},
}
