package cmd

import (
	"github.com/spf13/cobra"
)

// CipherCmd groups the encrypt, decrypt, seal and open commands.
var CipherCmd = &cobra.Command{
	Use:   "cipher",
	Short: "Encrypt and decrypt text with the configured RSA key",
	Long: `Encrypts and decrypts short text with RSA PKCS#1 v1.5, using the key held in
the obfuscated key blob. Payloads larger than the key's capacity (245 bytes for
a 2048-bit key) can be sealed into an envelope instead.

Input is taken from the first argument or, when absent, from stdin.
Results are written to stdout; status messages go to stderr.

Examples:
  keyblob cipher encrypt "hello world"
  keyblob cipher decrypt "$CIPHERTEXT"
  cat config.json | keyblob cipher seal > config.json.sealed
  keyblob cipher open < config.json.sealed`,
}

func init() {
	addGroupFlags(CipherCmd)
	CipherCmd.AddCommand(cipherEncryptCmd)
	CipherCmd.AddCommand(cipherDecryptCmd)
	CipherCmd.AddCommand(cipherSealCmd)
	CipherCmd.AddCommand(cipherOpenCmd)
}

// GetCipherCmd returns the CipherCmd for testing.
func GetCipherCmd() *cobra.Command {
	return CipherCmd
}

func resetCipherState() {
	encryptPublicKey = ""
	sealPublicKey = ""
}
