package workflows

import (
	"context"

	"github.com/PolarWolf314/keyblob/internal/audit"
	"github.com/PolarWolf314/keyblob/internal/cipher"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	Runtime

	// Plaintext is the text to encrypt.
	Plaintext string

	// PublicKeyData optionally holds a key document to encrypt to instead of
	// the configured key material. Only its public components are used.
	PublicKeyData []byte
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Ciphertext is the base64 PKCS#1 v1.5 ciphertext.
	Ciphertext string

	KeyFingerprint string
	KeyBits        int

	// PlaintextBytes and Capacity are the payload size and the key's limit.
	PlaintextBytes int
	Capacity       int
}

// Encrypt encrypts opts.Plaintext with RSA PKCS#1 v1.5.
//
// Returns ErrPayloadTooLarge if the plaintext exceeds the key's capacity, and
// the key source errors (ErrKeySourceDisabled, ErrDecode, ErrKeyParse) when the
// configured blob cannot be loaded.
func Encrypt(ctx context.Context, opts EncryptOptions) (result *EncryptResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("encrypt")
	entry.InputBytes = len(opts.Plaintext)
	defer func() { opts.record(entry, err) }()

	key, err := opts.loadPublicKey(opts.PublicKeyData, &entry)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	result = &EncryptResult{
		KeyFingerprint: key.Fingerprint(),
		KeyBits:        key.Size() * 8,
		PlaintextBytes: len(opts.Plaintext),
		Capacity:       cipher.Capacity(key),
	}

	opts.Logger.Debugf("Encrypting %d of %d bytes", result.PlaintextBytes, result.Capacity)
	result.Ciphertext, err = cipher.Encrypt(opts.Plaintext, key)
	if err != nil {
		return nil, err
	}

	entry.OutputBytes = len(result.Ciphertext)
	return result, nil
}
