package utils

import (
	"fmt"
	"os"
	"runtime"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"golang.org/x/term"
)

func ttyDevice() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}

// ReadPassphrase prompts on stderr and reads a passphrase without echo.
//
// Stdin is used when it is a terminal. Otherwise the controlling terminal
// is opened directly, so a key document can be piped on stdin while the
// passphrase is typed. When neither is available ErrPassphraseRequired is
// returned.
func ReadPassphrase(prompt string) ([]byte, error) {
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		return readHidden(fd, prompt)
	}

	tty, err := os.Open(ttyDevice())
	if err != nil {
		return nil, fmt.Errorf("%w: no terminal available for passphrase input", kerrors.ErrPassphraseRequired)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: %s is not a terminal", kerrors.ErrPassphraseRequired, ttyDevice())
	}
	return readHidden(fd, prompt)
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}
