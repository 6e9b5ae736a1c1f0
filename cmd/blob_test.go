package cmd

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/keyblob/internal/configs"
	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"golang.org/x/crypto/ssh"
)

func writeTestKey(t *testing.T) string {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "key.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write key: %v", err)
	}
	return path
}

func inspectJSON(t *testing.T) inspectOutput {
	t.Helper()
	stdout, _ := mustExecute(t, "", "blob", "inspect", "--json")
	var out inspectOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("inspect --json is not JSON: %v\n%s", err, stdout)
	}
	return out
}

func TestBlob_InspectDefault(t *testing.T) {
	setupTestEnvironment(t)

	out := inspectJSON(t)
	if out.BlobOrigin != "embedded" || !out.Loaded || !out.HasPrivate {
		t.Errorf("unexpected inspect output: %+v", out)
	}
	if out.KeyBits != 2048 || out.Capacity != 245 || out.Mask != 0x53 || out.Exponent != 65537 {
		t.Errorf("unexpected key details: %+v", out)
	}

	stdout, _ := mustExecute(t, "", "blob", "inspect")
	for _, want := range []string{"Origin:", "'embedded'", "2048 bits (private)", "245 bytes per encrypt"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected inspect output to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestBlob_ObfuscateUpdateConfig(t *testing.T) {
	env := setupTestEnvironment(t)
	keyPath := writeTestKey(t)
	blobPath := filepath.Join(t.TempDir(), "key.blob")

	stdout, stderr := mustExecute(t, "", "blob", "obfuscate", "--in", keyPath, "--out", blobPath, "--mask", "7", "--update-config")
	if stdout != "" {
		t.Errorf("expected no stdout when --out is set, got: %q", stdout)
	}
	if !strings.Contains(stderr, "now uses this blob") {
		t.Errorf("expected config update message, got: %q", stderr)
	}

	info, err := os.Stat(blobPath)
	if err != nil {
		t.Fatalf("blob file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("blob file mode = %v, want 0600", info.Mode().Perm())
	}

	config, err := configs.Load(env.configFile())
	if err != nil {
		t.Fatalf("updated config does not load: %v", err)
	}
	if config.KeySource.BlobFile != blobPath || config.KeySource.Mask != 7 {
		t.Errorf("unexpected key_source: %+v", config.KeySource)
	}

	out := inspectJSON(t)
	if out.BlobOrigin != "file:"+blobPath || out.KeyBits != 1024 || out.Mask != 7 {
		t.Errorf("inspect does not reflect the new blob: %+v", out)
	}

	ciphertext, _ := mustExecute(t, "", "cipher", "encrypt", "rotated")
	plaintext, _ := mustExecute(t, "", "cipher", "decrypt", strings.TrimSpace(ciphertext))
	if plaintext != "rotated\n" {
		t.Errorf("decrypt stdout = %q", plaintext)
	}
}

func TestBlob_ObfuscateStdinPublicOnly(t *testing.T) {
	env := setupTestEnvironment(t)
	keyData, err := os.ReadFile(writeTestKey(t))
	if err != nil {
		t.Fatalf("failed to read key: %v", err)
	}

	stdout, _ := mustExecute(t, string(keyData), "blob", "obfuscate", "--public-only", "--update-config")
	if strings.TrimSpace(stdout) == "" {
		t.Fatal("expected the blob on stdout")
	}

	config, err := configs.Load(env.configFile())
	if err != nil {
		t.Fatalf("updated config does not load: %v", err)
	}
	if config.KeySource.Blob != strings.TrimSpace(stdout) {
		t.Error("key_source.blob should hold the printed blob")
	}

	ciphertext, _ := mustExecute(t, "", "cipher", "encrypt", "encrypt only")
	_, _, err = executeCommand(t, "", "cipher", "decrypt", strings.TrimSpace(ciphertext))
	if !errors.Is(err, kerrors.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey decrypting with a public-only blob, got: %v", err)
	}
}

func TestBlob_ObfuscateErrors(t *testing.T) {
	setupTestEnvironment(t)

	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	block, err := ssh.MarshalPrivateKeyWithPassphrase(priv, "", []byte("hunter2"))
	if err != nil {
		t.Fatalf("failed to marshal OpenSSH key: %v", err)
	}
	protected := string(pem.EncodeToMemory(block))

	testCases := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
	}{
		{"EmptyInput", "", []string{"blob", "obfuscate"}, kerrors.ErrEmptyInput},
		{"NotAKey", "just some text", []string{"blob", "obfuscate"}, kerrors.ErrUnsupportedKeyFormat},
		{"MaskOutOfRange", "", []string{"blob", "obfuscate", "--mask", "256"}, kerrors.ErrInvalidConfig},
		{"PassphraseWithoutTerminal", protected, []string{"blob", "obfuscate"}, kerrors.ErrPassphraseRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tc.stdin, tc.args...)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestBlob_ExportPublic(t *testing.T) {
	setupTestEnvironment(t)

	testCases := []struct {
		format string
		want   string
	}{
		{"pem", "-----BEGIN PUBLIC KEY-----"},
		{"xml", "<RSAKeyValue>"},
	}
	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			stdout, _ := mustExecute(t, "", "blob", "export-public", "--format", tc.format)
			if !strings.Contains(stdout, tc.want) {
				t.Errorf("expected %q in output, got:\n%s", tc.want, stdout)
			}
			if strings.Contains(stdout, "<D>") || strings.Contains(stdout, "PRIVATE") {
				t.Error("exported key contains private components")
			}
		})
	}

	_, _, err := executeCommand(t, "", "blob", "export-public", "--format", "der")
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown format, got: %v", err)
	}
}
