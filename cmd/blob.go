package cmd

import (
	"github.com/spf13/cobra"
)

// BlobCmd groups the commands that create and examine obfuscated key blobs.
var BlobCmd = &cobra.Command{
	Use:   "blob",
	Short: "Create and inspect obfuscated key blobs",
	Long: `Provides commands for working with the obfuscated key blob that holds the
RSA key used by the cipher commands.

A blob is the key's <RSAKeyValue> XML document, base64 encoded, with every
character XORed with a one-byte mask. It keeps the key out of plain sight; it
is not encryption.

Examples:
  # Turn a PEM key into a blob and point the config at it
  keyblob blob obfuscate --in key.pem --out ~/.config/keyblob/key.blob --update-config

  # Show which key is configured
  keyblob blob inspect

  # Share the public half so others can encrypt to you
  keyblob blob export-public --format pem > key.pub.pem`,
}

func init() {
	addGroupFlags(BlobCmd)
	BlobCmd.AddCommand(blobObfuscateCmd)
	BlobCmd.AddCommand(blobInspectCmd)
	BlobCmd.AddCommand(blobExportPublicCmd)
}

// GetBlobCmd returns the BlobCmd for testing.
func GetBlobCmd() *cobra.Command {
	return BlobCmd
}

func resetBlobState() {
	resetBlobObfuscateState()
	resetBlobInspectState()
	resetBlobExportPublicState()
}
