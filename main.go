package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PolarWolf314/keyblob/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keyblob",
	Short: "keyblob - RSA text encryption with an obfuscated, self-contained key",
	Long: `keyblob encrypts and decrypts short text with RSA PKCS#1 v1.5 using a key
that ships as an obfuscated blob, so no key files need to be distributed.

Usage:
  keyblob <command> [flags]

Available Commands:
  cipher     Encrypt, decrypt, seal and open payloads
  blob       Create and inspect obfuscated key blobs
  config     Manage keyblob configuration
  log        View the audit log

Run 'keyblob help <command>' for more details on a specific command.
`,
	Run: func(c *cobra.Command, args []string) {
		fmt.Fprintln(c.OutOrStdout(), figure.NewFigure("keyblob", "", true).String())
		fmt.Fprintln(c.OutOrStdout(), "Run 'keyblob --help' to see available commands.")
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	rootCmd.AddCommand(cmd.Commands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
