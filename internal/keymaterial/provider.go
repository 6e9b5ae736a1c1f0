package keymaterial

import (
	"fmt"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/obfuscation"
)

// Provider supplies key material from an obfuscated blob.
//
// The zero value has no blob and is disabled. A Provider holds no key
// material itself, so it is safe for concurrent use.
type Provider struct {
	blob     string
	required bool
}

// NewProvider returns a provider for blob. When required is false the key
// source is treated as switched off and LoadKeyMaterial fails with
// ErrKeySourceDisabled.
func NewProvider(blob string, required bool) *Provider {
	return &Provider{blob: blob, required: required}
}

// NewDefaultProvider returns a required provider for DefaultBlob.
func NewDefaultProvider() *Provider {
	return NewProvider(DefaultBlob, true)
}

// Required reports whether the key source is enabled.
func (p *Provider) Required() bool {
	return p != nil && p.required
}

// GetObfuscatedKeyBlob returns the configured blob when required is true and
// an empty string otherwise.
func (p *Provider) GetObfuscatedKeyBlob(required bool) string {
	if !required || p == nil {
		return ""
	}
	return p.blob
}

// LoadKeyMaterial unmasks the blob with mask and parses the key document.
//
// A fresh record is returned on every call; the caller owns it and should
// Wipe it when done. Returns ErrKeySourceDisabled when the provider is not
// required or has no blob, ErrDecode when the blob is not base64, and
// ErrKeyParse when the unmasked bytes are not a valid key document.
func (p *Provider) LoadKeyMaterial(mask byte) (*KeyMaterial, error) {
	blob := p.GetObfuscatedKeyBlob(p.Required())
	if blob == "" {
		return nil, kerrors.ErrKeySourceDisabled
	}

	doc, err := obfuscation.Deobfuscate(blob, mask)
	if err != nil {
		return nil, fmt.Errorf("unmasking key blob: %w", err)
	}
	defer clear(doc)

	material, err := ParseXML(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing key document: %w", err)
	}
	return material, nil
}

// Obfuscate renders k as an <RSAKeyValue> document and masks it, producing a
// blob suitable for NewProvider.
func Obfuscate(k *KeyMaterial, mask byte) (string, error) {
	doc, err := MarshalXML(k)
	if err != nil {
		return "", err
	}
	defer clear(doc)
	return obfuscation.Obfuscate(doc, mask), nil
}
