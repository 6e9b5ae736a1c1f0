package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/keyblob/internal/audit"
	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/keymaterial"
	"github.com/PolarWolf314/keyblob/internal/utils"
)

// ObfuscateOptions configures the obfuscate workflow.
type ObfuscateOptions struct {
	Runtime

	// KeyData is an XML, PEM or OpenSSH key document.
	KeyData []byte

	// Passphrase unlocks an encrypted OpenSSH key.
	Passphrase []byte

	// Mask overrides the configured XOR mask when non-nil.
	Mask *byte

	// PublicOnly drops private components before obfuscating.
	PublicOnly bool

	// OutputPath, when set, receives the blob instead of only returning it.
	OutputPath string
}

// ObfuscateResult contains the outcome of an obfuscate operation.
type ObfuscateResult struct {
	Blob           string
	Mask           byte
	KeyFingerprint string
	KeyBits        int
	HasPrivate     bool
	OutputPath     string
}

// Obfuscate converts a key document into an obfuscated blob usable as
// key_source.blob or key_source.blob_file.
//
// Returns ErrPassphraseRequired for an encrypted OpenSSH key without a
// passphrase, so callers can prompt and retry. Returns ErrUnsupportedKeyFormat
// for non-RSA keys.
func Obfuscate(ctx context.Context, opts ObfuscateOptions) (result *ObfuscateResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(opts.KeyData) == 0 {
		return nil, fmt.Errorf("%w: key document is empty", kerrors.ErrEmptyInput)
	}

	entry := audit.NewEntry("obfuscate")
	entry.InputBytes = len(opts.KeyData)
	defer func() { opts.record(entry, err) }()

	key, err := keymaterial.ParseKeyDocument(opts.KeyData, opts.Passphrase)
	if err != nil {
		return nil, err
	}
	defer func() { key.Wipe() }()

	if opts.PublicOnly && key.HasPrivate() {
		public := key.Public()
		key.Wipe()
		key = public
	}
	describeKey(&entry, key)

	mask := opts.config().MaskByte()
	if opts.Mask != nil {
		mask = *opts.Mask
	}

	blob, err := keymaterial.Obfuscate(key, mask)
	if err != nil {
		return nil, err
	}
	entry.OutputBytes = len(blob)

	if opts.OutputPath != "" {
		if err := utils.WritePrivateFile(opts.OutputPath, []byte(blob+"\n")); err != nil {
			return nil, err
		}
		opts.Logger.Infof("Wrote blob to %s", opts.OutputPath)
	}

	return &ObfuscateResult{
		Blob:           blob,
		Mask:           mask,
		KeyFingerprint: key.Fingerprint(),
		KeyBits:        key.Size() * 8,
		HasPrivate:     key.HasPrivate(),
		OutputPath:     opts.OutputPath,
	}, nil
}
