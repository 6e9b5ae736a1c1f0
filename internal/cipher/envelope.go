package cipher

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/keymaterial"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	symmetricKeySize = 32
	nonceSize        = 24
	lengthPrefixSize = 2
)

// Seal encrypts plaintext of any length. A fresh 32-byte key seals the
// payload with secretbox and is itself wrapped with RSA PKCS#1 v1.5.
//
// Envelope layout before base64:
//
//	uint16 big-endian wrapped key length | wrapped key | nonce (24) | box
func Seal(plaintext []byte, key *keymaterial.KeyMaterial) (string, error) {
	pub, err := key.PublicKey()
	if err != nil {
		return "", err
	}

	var symKey [symmetricKeySize]byte
	if _, err := io.ReadFull(rand.Reader, symKey[:]); err != nil {
		return "", fmt.Errorf("failed to generate symmetric key: %w", err)
	}
	defer clear(symKey[:])

	wrapped, err := rsa.EncryptPKCS1v15(rand.Reader, pub, symKey[:])
	if err != nil {
		return "", fmt.Errorf("failed to wrap symmetric key: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, lengthPrefixSize, lengthPrefixSize+len(wrapped)+nonceSize+len(plaintext)+secretbox.Overhead)
	binary.BigEndian.PutUint16(out, uint16(len(wrapped)))
	out = append(out, wrapped...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, &symKey)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Malformed or tampered envelopes return ErrDecryption.
func Open(envelope string, key *keymaterial.KeyMaterial) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecode, err)
	}
	if !key.HasPrivate() {
		return nil, fmt.Errorf("%w: private components are missing", kerrors.ErrInvalidKey)
	}

	if len(raw) < lengthPrefixSize {
		return nil, fmt.Errorf("%w: envelope is truncated", kerrors.ErrDecryption)
	}
	wrappedLen := int(binary.BigEndian.Uint16(raw))
	rest := raw[lengthPrefixSize:]
	if len(rest) < wrappedLen+nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: envelope is truncated", kerrors.ErrDecryption)
	}

	symKeyBytes, err := decryptRaw(rest[:wrappedLen], key)
	if err != nil {
		return nil, err
	}
	defer clear(symKeyBytes)
	if len(symKeyBytes) != symmetricKeySize {
		return nil, fmt.Errorf("%w: wrapped key has wrong size", kerrors.ErrDecryption)
	}

	var symKey [symmetricKeySize]byte
	copy(symKey[:], symKeyBytes)
	defer clear(symKey[:])

	var nonce [nonceSize]byte
	copy(nonce[:], rest[wrappedLen:wrappedLen+nonceSize])

	plaintext, ok := secretbox.Open(nil, rest[wrappedLen+nonceSize:], &nonce, &symKey)
	if !ok {
		return nil, fmt.Errorf("%w: failed to open secretbox", kerrors.ErrDecryption)
	}
	return plaintext, nil
}
