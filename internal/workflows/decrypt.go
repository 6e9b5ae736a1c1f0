package workflows

import (
	"context"

	"github.com/PolarWolf314/keyblob/internal/audit"
	"github.com/PolarWolf314/keyblob/internal/cipher"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	Runtime

	// Ciphertext is the base64 ciphertext produced by Encrypt.
	Ciphertext string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	Plaintext      string
	KeyFingerprint string
	KeyBits        int
}

// Decrypt loads the configured key material and decrypts opts.Ciphertext.
//
// A fresh key record is loaded on every call and wiped before returning.
// Returns ErrDecode for malformed base64, ErrInvalidKey when the blob holds
// only public components, and ErrDecryption when the ciphertext does not
// match the key.
func Decrypt(ctx context.Context, opts DecryptOptions) (result *DecryptResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("decrypt")
	entry.InputBytes = len(opts.Ciphertext)
	defer func() { opts.record(entry, err) }()

	key, err := opts.loadKey(&entry)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	plaintext, err := cipher.Decrypt(opts.Ciphertext, key)
	if err != nil {
		return nil, err
	}

	entry.OutputBytes = len(plaintext)
	opts.Logger.Debugf("Decrypted %d bytes", len(plaintext))

	return &DecryptResult{
		Plaintext:      plaintext,
		KeyFingerprint: key.Fingerprint(),
		KeyBits:        key.Size() * 8,
	}, nil
}
