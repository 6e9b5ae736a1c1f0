package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
)

func TestCipher_EncryptDecrypt(t *testing.T) {
	setupTestEnvironment(t)

	stdout, stderr := mustExecute(t, "", "cipher", "encrypt", "hello world")
	ciphertext := strings.TrimSpace(stdout)
	if ciphertext == "" || strings.Contains(ciphertext, "hello") {
		t.Fatalf("unexpected ciphertext output: %q", stdout)
	}
	if !strings.Contains(stderr, "Encrypted 11 of 245 bytes") {
		t.Errorf("expected encrypt summary on stderr, got: %q", stderr)
	}

	stdout, _ = mustExecute(t, "", "cipher", "decrypt", ciphertext)
	if stdout != "hello world\n" {
		t.Errorf("decrypt stdout = %q, want %q", stdout, "hello world\n")
	}
}

func TestCipher_Stdin(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _ := mustExecute(t, "piped secret\n", "cipher", "encrypt")
	stdout, _ = mustExecute(t, stdout, "cipher", "decrypt")
	if stdout != "piped secret\n" {
		t.Errorf("decrypt stdout = %q, want %q", stdout, "piped secret\n")
	}
}

func TestCipher_Errors(t *testing.T) {
	setupTestEnvironment(t)

	testCases := []struct {
		name       string
		args       []string
		stdin      string
		wantErr    error
		wantStderr string
	}{
		{"TooLarge", []string{"cipher", "encrypt", strings.Repeat("a", 246)}, "", kerrors.ErrPayloadTooLarge, "keyblob cipher seal"},
		{"NotBase64", []string{"cipher", "decrypt", "***"}, "", kerrors.ErrDecode, "not valid base64"},
		{"Garbage", []string{"cipher", "decrypt", "aGVsbG8="}, "", kerrors.ErrDecryption, "Decryption failed"},
		{"EmptyStdin", []string{"cipher", "encrypt"}, "", kerrors.ErrEmptyInput, "No input provided"},
		{"BadEnvelope", []string{"cipher", "open", "aGVsbG8="}, "", kerrors.ErrDecryption, "Decryption failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := executeCommand(t, tc.stdin, tc.args...)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
			if !IsReported(err) {
				t.Error("error should be marked as reported")
			}
			if !strings.Contains(stderr, tc.wantStderr) {
				t.Errorf("expected stderr to contain %q, got: %q", tc.wantStderr, stderr)
			}
			if stdout != "" {
				t.Errorf("expected no stdout on failure, got: %q", stdout)
			}
		})
	}
}

func TestCipher_SealOpen(t *testing.T) {
	setupTestEnvironment(t)

	payload := strings.Repeat("sealed payload ", 100)
	stdout, stderr := mustExecute(t, payload, "cipher", "seal")
	if !strings.Contains(stderr, "Sealed 1.5 KiB") {
		t.Errorf("expected seal summary on stderr, got: %q", stderr)
	}

	var opened bytes.Buffer
	stdout, _ = mustExecute(t, stdout, "cipher", "open")
	opened.WriteString(stdout)
	if opened.String() != payload {
		t.Errorf("open returned %d bytes, want %d", opened.Len(), len(payload))
	}
}

func TestCipher_EncryptWithPublicKey(t *testing.T) {
	setupTestEnvironment(t)

	pubPath := t.TempDir() + "/key.pub.pem"
	mustExecute(t, "", "blob", "export-public", "--out", pubPath)

	stdout, stderr := mustExecute(t, "", "cipher", "encrypt", "--public-key", pubPath, "to the public key")
	if !strings.Contains(stderr, "Encrypted") {
		t.Errorf("expected encrypt summary, got: %q", stderr)
	}

	stdout, _ = mustExecute(t, "", "cipher", "decrypt", strings.TrimSpace(stdout))
	if stdout != "to the public key\n" {
		t.Errorf("decrypt stdout = %q", stdout)
	}

	_, _, err := executeCommand(t, "", "cipher", "encrypt", "--public-key", t.TempDir()+"/missing.pem", "x")
	if err == nil {
		t.Error("expected an error for a missing public key file")
	}
}
