package cipher

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/keymaterial"
	"github.com/PolarWolf314/keyblob/internal/obfuscation"
)

var (
	keyCacheMu sync.Mutex
	keyCache   = map[int]*rsa.PrivateKey{}
)

// testMaterial returns key material for a key of the given size. Keys are
// generated once per size and shared across tests.
func testMaterial(t *testing.T, bits int) *keymaterial.KeyMaterial {
	t.Helper()
	keyCacheMu.Lock()
	defer keyCacheMu.Unlock()

	priv, ok := keyCache[bits]
	if !ok {
		var err error
		priv, err = rsa.GenerateKey(rand.Reader, bits)
		if err != nil {
			t.Fatalf("failed to generate RSA key: %v", err)
		}
		keyCache[bits] = priv
	}

	material, err := keymaterial.FromPrivateKey(priv)
	if err != nil {
		t.Fatalf("FromPrivateKey failed: %v", err)
	}
	return material
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testMaterial(t, 2048)

	testCases := []struct {
		name      string
		plaintext string
	}{
		{"HelloWorld", "hello world"},
		{"Empty", ""},
		{"Unicode", "héllo wörld ✓"},
		{"Multiline", "DB_PASSWORD=secret\nAPI_KEY=abc123\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, err := Encrypt(tc.plaintext, key)
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}

			raw, err := base64.StdEncoding.DecodeString(ciphertext)
			if err != nil {
				t.Fatalf("ciphertext is not standard base64: %v", err)
			}
			if len(raw) != key.Size() {
				t.Errorf("expected %d ciphertext bytes, got %d", key.Size(), len(raw))
			}

			got, err := Decrypt(ciphertext, key)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if got != tc.plaintext {
				t.Errorf("Decrypt() = %q, want %q", got, tc.plaintext)
			}
		})
	}
}

func TestEncrypt_CapacityBoundary(t *testing.T) {
	key := testMaterial(t, 2048)

	if got := Capacity(key); got != 245 {
		t.Fatalf("Capacity() = %d, want 245", got)
	}

	atLimit := strings.Repeat("a", 245)
	ciphertext, err := Encrypt(atLimit, key)
	if err != nil {
		t.Fatalf("Encrypt of 245 bytes failed: %v", err)
	}
	got, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != atLimit {
		t.Error("245-byte payload did not round-trip")
	}

	_, err = Encrypt(strings.Repeat("a", 246), key)
	if !errors.Is(err, kerrors.ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge for 246 bytes, got: %v", err)
	}

	// Capacity counts bytes, not characters.
	_, err = Encrypt(strings.Repeat("é", 123), key)
	if !errors.Is(err, kerrors.ErrPayloadTooLarge) {
		t.Errorf("expected ErrPayloadTooLarge for 246 UTF-8 bytes, got: %v", err)
	}
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	key := testMaterial(t, 1024)

	first, err := Encrypt("same text", key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := Encrypt("same text", key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if first == second {
		t.Error("two encryptions of the same plaintext should differ")
	}
}

func TestEncrypt_PublicOnlyKey(t *testing.T) {
	key := testMaterial(t, 1024)
	public := key.Public()

	ciphertext, err := Encrypt("hello", public)
	if err != nil {
		t.Fatalf("Encrypt with public-only key failed: %v", err)
	}

	_, err = Decrypt(ciphertext, public)
	if !errors.Is(err, kerrors.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey decrypting with public-only key, got: %v", err)
	}

	got, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt with full key failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Decrypt() = %q, want %q", got, "hello")
	}
}

func TestEncrypt_MissingKey(t *testing.T) {
	_, err := Encrypt("hello", &keymaterial.KeyMaterial{})
	if !errors.Is(err, kerrors.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got: %v", err)
	}
	if Capacity(nil) != 0 {
		t.Error("Capacity(nil) should be 0")
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	key := testMaterial(t, 2048)

	ciphertext, err := Encrypt("hello world", key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(ciphertext)
	raw[len(raw)/2] ^= 0x01

	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw), key)
	if !errors.Is(err, kerrors.ErrDecryption) {
		t.Errorf("expected ErrDecryption for tampered ciphertext, got: %v", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	key := testMaterial(t, 2048)
	other := testMaterial(t, 1024)

	ciphertext, err := Encrypt("hello world", key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(ciphertext, other)
	if !errors.Is(err, kerrors.ErrDecryption) {
		t.Errorf("expected ErrDecryption with mismatched key, got: %v", err)
	}
}

func TestDecrypt_InvalidInput(t *testing.T) {
	key := testMaterial(t, 1024)

	testCases := []struct {
		name       string
		ciphertext string
		wantErr    error
	}{
		{"NotBase64", "***", kerrors.ErrDecode},
		{"URLAlphabet", "ab-_", kerrors.ErrDecode},
		{"Empty", "", kerrors.ErrDecryption},
		{"TooShort", base64.StdEncoding.EncodeToString([]byte("short")), kerrors.ErrDecryption},
		{"TooLong", base64.StdEncoding.EncodeToString(make([]byte, key.Size()+1)), kerrors.ErrDecryption},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decrypt(tc.ciphertext, key)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestDecrypt_NonUTF8Plaintext(t *testing.T) {
	key := testMaterial(t, 1024)
	pub, err := key.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey failed: %v", err)
	}

	raw, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte{0xff, 0xfe, 0xfd})
	if err != nil {
		t.Fatalf("EncryptPKCS1v15 failed: %v", err)
	}

	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw), key)
	if !errors.Is(err, kerrors.ErrDecryption) {
		t.Errorf("expected ErrDecryption for non-UTF-8 plaintext, got: %v", err)
	}
}

func TestDecrypt_DefaultKeyMaterial(t *testing.T) {
	key, err := keymaterial.NewDefaultProvider().LoadKeyMaterial(obfuscation.DefaultMask)
	if err != nil {
		t.Fatalf("LoadKeyMaterial failed: %v", err)
	}
	defer key.Wipe()

	ciphertext, err := Encrypt("hello world", key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	got, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Decrypt() = %q, want %q", got, "hello world")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testMaterial(t, 2048)

	large := make([]byte, 64*1024)
	if _, err := rand.Read(large); err != nil {
		t.Fatalf("failed to generate payload: %v", err)
	}

	testCases := []struct {
		name      string
		plaintext []byte
	}{
		{"Empty", []byte{}},
		{"Small", []byte("hello world")},
		{"AboveCapacity", bytes.Repeat([]byte("x"), 1000)},
		{"LargeBinary", large},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			envelope, err := Seal(tc.plaintext, key)
			if err != nil {
				t.Fatalf("Seal failed: %v", err)
			}

			got, err := Open(envelope, key)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if !bytes.Equal(got, tc.plaintext) {
				t.Error("envelope did not round-trip")
			}
		})
	}
}

func TestSeal_PublicOnlyKey(t *testing.T) {
	key := testMaterial(t, 1024)

	envelope, err := Seal([]byte("payload"), key.Public())
	if err != nil {
		t.Fatalf("Seal with public-only key failed: %v", err)
	}

	if _, err := Open(envelope, key.Public()); !errors.Is(err, kerrors.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey opening with public-only key, got: %v", err)
	}
	if _, err := Seal([]byte("payload"), &keymaterial.KeyMaterial{}); !errors.Is(err, kerrors.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey sealing with empty key, got: %v", err)
	}
}

func TestOpen_Malformed(t *testing.T) {
	key := testMaterial(t, 1024)

	envelope, err := Seal([]byte("payload"), key)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(envelope)

	tamperedBox := append([]byte(nil), raw...)
	tamperedBox[len(tamperedBox)-1] ^= 0x01

	badLength := append([]byte(nil), raw...)
	badLength[0], badLength[1] = 0x00, 0x10

	testCases := []struct {
		name     string
		envelope string
		wantErr  error
	}{
		{"NotBase64", "***", kerrors.ErrDecode},
		{"Empty", "", kerrors.ErrDecryption},
		{"OneByte", base64.StdEncoding.EncodeToString([]byte{0x01}), kerrors.ErrDecryption},
		{"Truncated", base64.StdEncoding.EncodeToString(raw[:len(raw)/2]), kerrors.ErrDecryption},
		{"TamperedBox", base64.StdEncoding.EncodeToString(tamperedBox), kerrors.ErrDecryption},
		{"WrongWrappedLength", base64.StdEncoding.EncodeToString(badLength), kerrors.ErrDecryption},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Open(tc.envelope, key)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestOpen_WrongKey(t *testing.T) {
	envelope, err := Seal([]byte("payload"), testMaterial(t, 2048))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	_, err = Open(envelope, testMaterial(t, 1024))
	if !errors.Is(err, kerrors.ErrDecryption) {
		t.Errorf("expected ErrDecryption with mismatched key, got: %v", err)
	}
}
