package workflows

import (
	"context"

	"github.com/PolarWolf314/keyblob/internal/audit"
	"github.com/PolarWolf314/keyblob/internal/cipher"
)

// SealOptions configures the seal workflow.
type SealOptions struct {
	Runtime

	// Plaintext may be any length.
	Plaintext []byte

	// PublicKeyData optionally overrides the configured key, as in Encrypt.
	PublicKeyData []byte
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	Envelope       string
	KeyFingerprint string
	KeyBits        int
}

// Seal encrypts a payload of any size into a secretbox envelope whose key is
// wrapped with RSA PKCS#1 v1.5.
func Seal(ctx context.Context, opts SealOptions) (result *SealResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("seal")
	entry.InputBytes = len(opts.Plaintext)
	defer func() { opts.record(entry, err) }()

	key, err := opts.loadPublicKey(opts.PublicKeyData, &entry)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	envelope, err := cipher.Seal(opts.Plaintext, key)
	if err != nil {
		return nil, err
	}

	entry.OutputBytes = len(envelope)
	return &SealResult{
		Envelope:       envelope,
		KeyFingerprint: key.Fingerprint(),
		KeyBits:        key.Size() * 8,
	}, nil
}

// OpenOptions configures the open workflow.
type OpenOptions struct {
	Runtime

	// Envelope is the base64 envelope produced by Seal.
	Envelope string
}

// OpenResult contains the outcome of an open operation.
type OpenResult struct {
	Plaintext      []byte
	KeyFingerprint string
	KeyBits        int
}

// Open decrypts an envelope produced by Seal with the configured key.
// Malformed or tampered envelopes return ErrDecryption.
func Open(ctx context.Context, opts OpenOptions) (result *OpenResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("open")
	entry.InputBytes = len(opts.Envelope)
	defer func() { opts.record(entry, err) }()

	key, err := opts.loadKey(&entry)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	plaintext, err := cipher.Open(opts.Envelope, key)
	if err != nil {
		return nil, err
	}

	entry.OutputBytes = len(plaintext)
	return &OpenResult{
		Plaintext:      plaintext,
		KeyFingerprint: key.Fingerprint(),
		KeyBits:        key.Size() * 8,
	}, nil
}
