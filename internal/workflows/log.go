package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/keyblob/internal/audit"
	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	Runtime

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation (comma-separated).
	Operations string

	// FailuresOnly keeps only failed operations.
	FailuresOnly bool

	// Since and Until bound entries by date (YYYY-MM-DD, inclusive).
	Since string
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Path is the audit log that was read, empty when auditing is disabled.
	Path string

	Entries                  []audit.Entry
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// A disabled or not yet created log yields no entries. Returns
// ErrInvalidDateFormat if Since or Until is malformed.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var since, until time.Time
	if opts.Since != "" {
		t, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		since = t
	}
	if opts.Until != "" {
		t, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = t.Add(24*time.Hour - time.Nanosecond)
	}

	path, err := opts.config().AuditPath()
	if err != nil {
		return nil, err
	}
	result := &LogResult{Path: path}
	if path == "" {
		return result, nil
	}

	entries, err := audit.ReadEntries(path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	result.TotalEntriesBeforeFilter = len(entries)

	filtered := entries
	if opts.Operations != "" {
		filtered = filterByOperations(filtered, strings.Split(opts.Operations, ","))
	}
	if opts.FailuresOnly {
		filtered = filterEntries(filtered, func(e audit.Entry) bool { return e.Outcome == audit.OutcomeFailure })
	}
	if !since.IsZero() || !until.IsZero() {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			if !ok {
				return false
			}
			return (since.IsZero() || !t.Before(since)) && (until.IsZero() || !t.After(until))
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// Limit keeps the most recent entries in either order.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(strings.TrimSpace(op))] = true
	}
	return filterEntries(entries, func(e audit.Entry) bool {
		return opSet[strings.ToLower(e.Operation)]
	})
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}

// FormatDate returns the entry's date as YYYY-MM-DD, or the raw timestamp
// when it cannot be parsed.
func FormatDate(e audit.Entry) string {
	t, ok := entryTime(e)
	if !ok {
		return e.Timestamp
	}
	return t.Format("2006-01-02")
}

// FormatDateTime returns the entry's time as "YYYY-MM-DD HH:MM:SS" in UTC.
func FormatDateTime(e audit.Entry) string {
	t, ok := entryTime(e)
	if !ok {
		return e.Timestamp
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes the entry's outcome, sizes and key.
func FormatDetails(e audit.Entry) string {
	var parts []string
	if e.Outcome == audit.OutcomeFailure {
		parts = append(parts, "failed: "+e.ErrorCategory)
	}
	if e.InputBytes > 0 || e.OutputBytes > 0 {
		parts = append(parts, fmt.Sprintf("%d -> %d bytes", e.InputBytes, e.OutputBytes))
	}
	if e.KeyFingerprint != "" {
		fp := e.KeyFingerprint
		if len(fp) > 16 {
			fp = fp[:16]
		}
		parts = append(parts, fmt.Sprintf("key %s (%d-bit)", fp, e.KeyBits))
	}
	if e.BlobOrigin != "" {
		parts = append(parts, "from "+e.BlobOrigin)
	}
	return strings.Join(parts, ", ")
}

// FormatDetailsOneline is the compact form of FormatDetails.
func FormatDetailsOneline(e audit.Entry) string {
	if e.Outcome == audit.OutcomeFailure {
		return "FAIL " + e.ErrorCategory
	}
	return "ok"
}
