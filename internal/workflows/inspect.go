package workflows

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/PolarWolf314/keyblob/internal/audit"
	"github.com/PolarWolf314/keyblob/internal/cipher"
	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/keymaterial"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	Runtime
}

// InspectResult describes the configured key source. It never carries key
// components.
type InspectResult struct {
	BlobOrigin string
	Mask       byte
	Required   bool

	// Loaded is false when the key source is disabled.
	Loaded         bool
	KeyFingerprint string
	KeyBits        int
	Exponent       int
	HasPrivate     bool
	Capacity       int
}

// Inspect loads the configured key material and reports its shape.
// A disabled key source is reported, not returned as an error.
func Inspect(ctx context.Context, opts InspectOptions) (result *InspectResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := opts.config()
	result = &InspectResult{
		BlobOrigin: config.BlobOrigin(),
		Mask:       config.MaskByte(),
		Required:   config.KeySource.Required,
	}

	entry := audit.NewEntry("inspect")
	defer func() { opts.record(entry, err) }()

	key, err := opts.loadKey(&entry)
	if errors.Is(err, kerrors.ErrKeySourceDisabled) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	result.Loaded = true
	result.KeyFingerprint = key.Fingerprint()
	result.KeyBits = key.Size() * 8
	result.Exponent = int(new(big.Int).SetBytes(key.Exponent).Int64())
	result.HasPrivate = key.HasPrivate()
	result.Capacity = cipher.Capacity(key)
	return result, nil
}

// ExportPublicOptions configures the export-public workflow.
type ExportPublicOptions struct {
	Runtime

	// Format is "pem" (default), "xml" or "blob".
	Format string
}

// ExportPublicResult contains the exported public key.
type ExportPublicResult struct {
	Data           []byte
	Format         string
	KeyFingerprint string
}

// ExportPublic renders the public half of the configured key so others can
// encrypt to it with --public-key.
func ExportPublic(ctx context.Context, opts ExportPublicOptions) (result *ExportPublicResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = "pem"
	}
	if format != "pem" && format != "xml" && format != "blob" {
		return nil, fmt.Errorf("%w: unknown export format %q", kerrors.ErrInvalidConfig, format)
	}

	entry := audit.NewEntry("export-public")
	defer func() { opts.record(entry, err) }()

	key, err := opts.loadKey(&entry)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	public := key.Public()

	var data []byte
	switch format {
	case "pem":
		data, err = keymaterial.MarshalPublicPEM(public)
	case "xml":
		data, err = keymaterial.MarshalXML(public)
		data = append(data, '\n')
	case "blob":
		var blob string
		blob, err = keymaterial.Obfuscate(public, opts.config().MaskByte())
		data = []byte(blob + "\n")
	}
	if err != nil {
		return nil, err
	}

	entry.OutputBytes = len(data)
	return &ExportPublicResult{
		Data:           data,
		Format:         format,
		KeyFingerprint: public.Fingerprint(),
	}, nil
}
