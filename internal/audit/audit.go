package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/utils"
	"github.com/google/uuid"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Outcome values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Entry is a single audit record. It never carries plaintext, ciphertext,
// blobs or key components.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	User      string `json:"user,omitempty"`
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`
	Outcome   string `json:"outcome"`

	ErrorCategory  string `json:"error,omitempty"`
	InputBytes     int    `json:"input_bytes,omitempty"`
	OutputBytes    int    `json:"output_bytes,omitempty"`
	KeyFingerprint string `json:"key_fp,omitempty"`
	KeyBits        int    `json:"key_bits,omitempty"`
	BlobOrigin     string `json:"blob_origin,omitempty"`
}

// NewEntry returns an entry for op with ID, timestamp and caller identity
// filled in.
func NewEntry(op string) Entry {
	user, host := utils.CurrentIdentity()
	return Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(timestampLayout),
		User:      user,
		Host:      host,
		Operation: op,
	}
}

// Finish sets the outcome and error category from err.
func (e *Entry) Finish(err error) {
	if err != nil {
		e.Outcome = OutcomeFailure
		e.ErrorCategory = kerrors.Category(err)
		return
	}
	e.Outcome = OutcomeSuccess
	e.ErrorCategory = ""
}

// Log appends entry to the JSON Lines file at path, creating it with 0600
// permissions. An empty path disables logging. Callers treat a returned
// error as a warning; operations never fail because auditing failed.
func Log(path string, entry Entry) error {
	if path == "" {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampLayout)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// ReadEntries reads all entries from the audit log at path. A missing log
// yields no entries.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are skipped so a partial write does not hide history.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to scan audit log: %w", err)
	}
	return entries, nil
}
