package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// testEnv holds the isolated directories a test CLI runs against.
type testEnv struct {
	ConfigDir string
	DataDir   string
}

func (e testEnv) configFile() string { return filepath.Join(e.ConfigDir, "keyblob", "config.toml") }
func (e testEnv) auditFile() string  { return filepath.Join(e.DataDir, "keyblob", "audit.jsonl") }

// setupTestEnvironment points XDG directories at temp dirs, disables color
// and resets command globals before and after the test.
func setupTestEnvironment(t *testing.T) testEnv {
	t.Helper()
	env := testEnv{ConfigDir: t.TempDir(), DataDir: t.TempDir()}
	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_DATA_HOME", env.DataDir)
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	t.Cleanup(ResetGlobalState)
	return env
}

// newTestCLI builds a root command around the real command tree.
func newTestCLI() *cobra.Command {
	root := &cobra.Command{
		Use:           "keyblob",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(Commands()...)
	return root
}

// executeCommand runs args with stdin as input and returns stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	ResetGlobalState()

	var stdout, stderr bytes.Buffer
	root := newTestCLI()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// mustExecute is executeCommand that fails the test on error.
func mustExecute(t *testing.T, stdin string, args ...string) (string, string) {
	t.Helper()
	stdout, stderr, err := executeCommand(t, stdin, args...)
	if err != nil {
		t.Fatalf("keyblob %s failed: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return stdout, stderr
}
