package cmd

import (
	"fmt"

	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/PolarWolf314/keyblob/internal/utils"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	exportPublicFormat string
	exportPublicOut    string
)

func init() {
	blobExportPublicCmd.Flags().StringVarP(&exportPublicFormat, "format", "f", "pem", "output format: pem, xml or blob")
	blobExportPublicCmd.Flags().StringVarP(&exportPublicOut, "out", "o", "", "write to this file instead of stdout")
}

func resetBlobExportPublicState() {
	exportPublicFormat = "pem"
	exportPublicOut = ""
}

var blobExportPublicCmd = &cobra.Command{
	Use:   "export-public",
	Short: "Export the public half of the configured key",
	Long: `Writes the public half of the configured key as a PKIX PEM block, an
<RSAKeyValue> XML document or an obfuscated public-only blob.

The output can be passed to "keyblob cipher encrypt --public-key".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export-public command")
		spinner, cleanup := startSpinner(cmd, "Exporting public key...")
		defer cleanup()

		result, err := workflows.ExportPublic(cmd.Context(), workflows.ExportPublicOptions{
			Runtime: runtime(),
			Format:  exportPublicFormat,
		})
		if err != nil {
			return fail(spinner, "export the public key", err)
		}

		fp := ui.Fingerprint.Sprint(ui.ShortFingerprint(result.KeyFingerprint))
		if exportPublicOut != "" {
			if err := utils.WritePrivateFile(exportPublicOut, result.Data); err != nil {
				return fail(spinner, "export the public key", err)
			}
			spinner.FinalMSG = ui.SuccessLine(fmt.Sprintf("Exported public key %s as %s to %s",
				fp, result.Format, ui.Path.Sprint(exportPublicOut)))
			return nil
		}

		spinner.FinalMSG = ui.SuccessLine(fmt.Sprintf("Exported public key %s as %s", fp, result.Format))
		cleanup()
		_, err = cmd.OutOrStdout().Write(result.Data)
		return err
	},
}
