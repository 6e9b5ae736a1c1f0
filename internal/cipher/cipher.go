// Package cipher encrypts and decrypts short text payloads with RSA
// PKCS#1 v1.5, and larger payloads with an RSA-wrapped secretbox envelope.
//
// Ciphertext and envelopes are standard base64 without line wrapping. All
// functions are stateless and safe for concurrent use.
package cipher

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/keymaterial"
)

// paddingOverhead is the minimum PKCS#1 v1.5 encryption padding in bytes.
const paddingOverhead = 11

// Capacity returns the largest plaintext, in bytes, that Encrypt accepts for
// key. It returns 0 when key has no usable public components.
func Capacity(key *keymaterial.KeyMaterial) int {
	if !key.HasPublic() {
		return 0
	}
	if n := key.Size() - paddingOverhead; n > 0 {
		return n
	}
	return 0
}

// Encrypt encrypts the UTF-8 bytes of plaintext under the public half of key
// and returns the base64 ciphertext. Output is randomized, so encrypting the
// same text twice yields different ciphertexts.
func Encrypt(plaintext string, key *keymaterial.KeyMaterial) (string, error) {
	pub, err := key.PublicKey()
	if err != nil {
		return "", err
	}

	if limit := Capacity(key); len(plaintext) > limit {
		return "", fmt.Errorf("%w: %d bytes exceeds the %d byte limit for a %d-bit key",
			kerrors.ErrPayloadTooLarge, len(plaintext), limit, key.Size()*8)
	}

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decodes the base64 ciphertext and decrypts it with the private
// half of key.
//
// Returns ErrDecode for malformed base64, ErrInvalidKey when key has no
// private components, and ErrDecryption when the ciphertext has the wrong
// length, the padding does not verify, or the plaintext is not UTF-8.
func Decrypt(ciphertext string, key *keymaterial.KeyMaterial) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrDecode, err)
	}

	plain, err := decryptRaw(raw, key)
	if err != nil {
		return "", err
	}
	defer clear(plain)

	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", kerrors.ErrDecryption)
	}
	return string(plain), nil
}

func decryptRaw(raw []byte, key *keymaterial.KeyMaterial) ([]byte, error) {
	priv, err := key.PrivateKey()
	if err != nil {
		return nil, err
	}
	defer keymaterial.WipePrivateKey(priv)

	if len(raw) != key.Size() {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, key expects %d",
			kerrors.ErrDecryption, len(raw), key.Size())
	}

	plain, err := rsa.DecryptPKCS1v15(nil, priv, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecryption, err)
	}
	return plain, nil
}
