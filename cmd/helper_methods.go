package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/ui"
	"github.com/PolarWolf314/keyblob/internal/utils"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// startSpinner starts a spinner on stderr unless verbose or debug output is
// on. The returned cleanup stops it and prints FinalMSG; it is safe to call
// more than once, so commands call it before writing results to stdout and
// also defer it.
//
// spinner.FinalMSG values do not need trailing newlines.
func startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	out := cmd.ErrOrStderr()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			finalMsg := ""
			if s.FinalMSG != "" {
				finalMsg = ui.EnsureNewline(s.FinalMSG)
				s.FinalMSG = ""
			}
			if quiet {
				s.Stop()
			}
			if finalMsg != "" {
				fmt.Fprint(out, finalMsg)
			}
		})
	}

	return s, cleanup
}

// readInput returns the first positional argument or the command's stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if in := cmd.InOrStdin(); in != os.Stdin {
		return utils.InputFromArgsOrReader(args, in)
	}
	return utils.InputFromArgsOrStdin(args)
}

// readFileOrStdin reads path, or the command's stdin when path is "-".
func readFileOrStdin(cmd *cobra.Command, path string) ([]byte, error) {
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}
	if in := cmd.InOrStdin(); in != os.Stdin {
		return utils.ReadAllLimited(in)
	}
	return utils.ReadStdin()
}

func writeOutput(w io.Writer, data string) {
	fmt.Fprint(w, ui.EnsureNewline(data))
}

// formatError turns a workflow error into a final spinner message.
func formatError(action string, err error) string {
	switch {
	case errors.Is(err, kerrors.ErrKeySourceDisabled):
		return ui.FailureLine("No key material: the key source is disabled",
			"Set "+ui.Code.Sprint("required = true")+" under [key_source] in your config")

	case errors.Is(err, kerrors.ErrDecode):
		return ui.FailureLine("Input is not valid base64",
			"Ciphertext must be standard base64 without line breaks")

	case errors.Is(err, kerrors.ErrKeyParse):
		return ui.FailureLine("The key blob does not decode to a valid key",
			"Check key_source.mask and key_source.blob, or regenerate the blob with "+ui.Code.Sprint("keyblob blob obfuscate"))

	case errors.Is(err, kerrors.ErrInvalidKey):
		return ui.FailureLine("The key is missing the components needed to "+action,
			"Decryption needs a blob with private components")

	case errors.Is(err, kerrors.ErrPayloadTooLarge):
		return ui.FailureLine(err.Error(),
			"Use "+ui.Code.Sprint("keyblob cipher seal")+" for larger payloads")

	case errors.Is(err, kerrors.ErrDecryption):
		return ui.FailureLine("Decryption failed: the ciphertext does not match this key or was altered")

	case errors.Is(err, kerrors.ErrPassphraseRequired):
		return ui.FailureLine("The key is passphrase protected and no terminal is available to prompt")

	case errors.Is(err, kerrors.ErrUnsupportedKeyFormat):
		return ui.FailureLine(err.Error(),
			"Supported: <RSAKeyValue> XML, PKCS#1, PKCS#8, PKIX PEM and OpenSSH RSA keys")

	case errors.Is(err, kerrors.ErrEmptyInput):
		return ui.FailureLine("No input provided",
			"Pass it as an argument or pipe it on stdin")

	case errors.Is(err, kerrors.ErrInvalidConfig), errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.FailureLine(err.Error())

	default:
		return ui.FailureLine("Failed to " + action + ": " + err.Error())
	}
}

// fail sets the spinner's final message for err and returns it marked as
// reported, so the command exits non-zero without printing it twice.
func fail(s *spinner.Spinner, action string, err error) error {
	Logger.Errorf("%s: %v", action, err)
	s.FinalMSG = formatError(action, err)
	return reportedError{err}
}
