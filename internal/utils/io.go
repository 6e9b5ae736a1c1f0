package utils

import (
	"fmt"
	"io"
	"os"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
)

// maxStdinBytes bounds how much piped input a command will read.
const maxStdinBytes = 16 << 20

// ReadStdin reads all content from stdin.
// Returns an error if stdin is a terminal (no piped data), is empty, or
// cannot be read.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// ModeCharDevice is set when stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("%w: no data provided on stdin", kerrors.ErrEmptyInput)
	}

	return ReadAllLimited(os.Stdin)
}

// ReadAllLimited reads r to EOF, failing if it yields nothing or more than
// 16 MiB.
func ReadAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxStdinBytes {
		return nil, fmt.Errorf("input exceeds %d bytes", maxStdinBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: input is empty", kerrors.ErrEmptyInput)
	}
	return data, nil
}

// InputFromArgsOrReader returns args[0] when present, otherwise the content
// of r with one trailing newline removed.
func InputFromArgsOrReader(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := ReadAllLimited(r)
	if err != nil {
		return "", err
	}
	return TrimTrailingNewline(string(data)), nil
}

// InputFromArgsOrStdin is InputFromArgsOrReader on os.Stdin, refusing to
// block on an interactive terminal.
func InputFromArgsOrStdin(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := ReadStdin()
	if err != nil {
		return "", err
	}
	return TrimTrailingNewline(string(data)), nil
}
