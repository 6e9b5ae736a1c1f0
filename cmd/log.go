package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PolarWolf314/keyblob/internal/audit"
	"github.com/PolarWolf314/keyblob/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logFailures  bool
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	addGroupFlags(LogCmd)
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	LogCmd.Flags().BoolVar(&logFailures, "failures", false, "show failed operations only")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logFailures = false
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

// LogCmd shows the audit log.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of keyblob operations.

Each entry records who ran which operation, when, whether it succeeded and
which key was used. Payloads and key material are never logged.

Examples:
  keyblob log                              # View full log
  keyblob log -n 10                        # Last 10 entries
  keyblob log --reverse                    # Most recent first
  keyblob log --operation encrypt,decrypt  # Filter by operation
  keyblob log --failures                   # Failed operations only
  keyblob log --since 2024-01-01           # Filter by date
  keyblob log --json                       # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
		Runtime:      runtime(),
		Limit:        logLimit,
		Reverse:      logReverse,
		Operations:   logOperation,
		FailuresOnly: logFailures,
		Since:        logSince,
		Until:        logUntil,
	})
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), formatError("read the audit log", err))
		return reportedError{err}
	}

	Logger.Debugf("Parsed %d entries from %s", result.TotalEntriesBeforeFilter, result.Path)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	out := cmd.OutOrStdout()
	if logJSON {
		return outputLogJSON(out, result.Entries)
	}

	if len(result.Entries) == 0 {
		switch {
		case result.Path == "":
			fmt.Fprintln(out, "Auditing is disabled.")
		case result.TotalEntriesBeforeFilter == 0:
			fmt.Fprintln(out, "No audit log entries found.")
		default:
			fmt.Fprintln(out, "No audit log entries found matching the filters.")
		}
		return nil
	}

	if logOneline {
		outputLogOneline(out, result.Entries)
		return nil
	}
	outputLogDefault(out, result.Entries)
	return nil
}

func outputLogJSON(w io.Writer, entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputLogOneline(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s %s %s\n", workflows.FormatDate(e), e.User, e.Operation, workflows.FormatDetailsOneline(e))
	}
}

func outputLogDefault(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%-19s  %-16s  %-13s  %s\n", workflows.FormatDateTime(e), e.User, e.Operation, workflows.FormatDetails(e))
	}
}
