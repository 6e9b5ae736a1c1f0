// Package audit records keyblob operations in an append-only JSON Lines log.
//
// The log lives at $XDG_DATA_HOME/keyblob/audit.jsonl unless the config
// names another path. Each line holds:
//   - ID (random UUID) and timestamp (RFC3339 with microseconds, UTC)
//   - User and host
//   - Operation name and outcome
//   - Error category, byte counts, key fingerprint and size
//
// Plaintext, ciphertext, blobs and key components are never written.
//
// # Usage
//
//	entry := audit.NewEntry("decrypt")
//	entry.InputBytes = len(ciphertext)
//	entry.Finish(err)
//	if logErr := audit.Log(path, entry); logErr != nil {
//	    log.Warnf("audit: %v", logErr)
//	}
//
// # Failure Handling
//
// Audit logging is best-effort. Log returns its error so callers can warn,
// but no operation fails because auditing failed.
//
// # Reading Logs
//
// ReadEntries parses the log for `keyblob log`. Malformed lines are skipped
// to tolerate partial writes.
package audit
