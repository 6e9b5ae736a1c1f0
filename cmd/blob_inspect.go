package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
)

var blobInspectJSON bool

func init() {
	blobInspectCmd.Flags().BoolVar(&blobInspectJSON, "json", false, "output in JSON format")
}

func resetBlobInspectState() {
	blobInspectJSON = false
}

type inspectOutput struct {
	BlobOrigin     string `json:"blob_origin"`
	Mask           int    `json:"mask"`
	Required       bool   `json:"required"`
	Loaded         bool   `json:"loaded"`
	KeyFingerprint string `json:"key_fingerprint,omitempty"`
	KeyBits        int    `json:"key_bits,omitempty"`
	Exponent       int    `json:"exponent,omitempty"`
	HasPrivate     bool   `json:"has_private"`
	Capacity       int    `json:"capacity,omitempty"`
}

var blobInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show details of the configured key",
	Long: `Loads the configured key blob and shows where it came from, the key size,
its fingerprint and how many bytes a single encrypt call accepts.

Key components are never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inspect command")

		result, err := workflows.Inspect(cmd.Context(), workflows.InspectOptions{Runtime: runtime()})
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), formatError("inspect the key", err))
			return reportedError{err}
		}

		if blobInspectJSON {
			return outputInspectJSON(cmd.OutOrStdout(), result)
		}
		printInspect(cmd.OutOrStdout(), result)
		return nil
	},
}

func outputInspectJSON(w io.Writer, r *workflows.InspectResult) error {
	out := inspectOutput{
		BlobOrigin:     r.BlobOrigin,
		Mask:           int(r.Mask),
		Required:       r.Required,
		Loaded:         r.Loaded,
		KeyFingerprint: r.KeyFingerprint,
		KeyBits:        r.KeyBits,
		Exponent:       r.Exponent,
		HasPrivate:     r.HasPrivate,
		Capacity:       r.Capacity,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal inspect output: %v", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printInspect(w io.Writer, r *workflows.InspectResult) {
	fmt.Fprintln(w, ui.Info.Sprint("Key Source"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-14s %s\n", "Origin:", ui.Highlight.Sprint(r.BlobOrigin))
	fmt.Fprintf(w, "  %-14s %#02x\n", "Mask:", r.Mask)
	fmt.Fprintf(w, "  %-14s %t\n", "Required:", r.Required)

	if !r.Loaded {
		fmt.Fprintln(w)
		fmt.Fprint(w, ui.Warning.Sprint("⚠")+" Key source is disabled; cipher commands will fail\n")
		return
	}

	kind := "private"
	if !r.HasPrivate {
		kind = "public only"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Info.Sprint("Key"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-14s %d bits (%s)\n", "Size:", r.KeyBits, kind)
	fmt.Fprintf(w, "  %-14s %d\n", "Exponent:", r.Exponent)
	fmt.Fprintf(w, "  %-14s %s\n", "Fingerprint:", ui.Fingerprint.Sprint(r.KeyFingerprint))
	fmt.Fprintf(w, "  %-14s %d bytes per encrypt\n", "Capacity:", r.Capacity)
}
