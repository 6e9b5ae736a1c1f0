// Package obfuscation masks key documents at rest with a single-byte XOR.
//
// This is a deterrent against casual inspection (strings, grep, a glance at a
// config file). It is not encryption: the mask is a fixed, non-secret value and
// anyone holding the blob can reverse it.
//
// Wire format:
//
//	blob = base64( plain[i] ^ mask for each i )
//
// The base64 alphabet is the standard one, without line wrapping.
package obfuscation

import (
	"encoding/base64"
	"fmt"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
)

// DefaultMask is the mask byte shared by every shipped blob.
const DefaultMask byte = 0x53

// Obfuscate XORs every byte of plain with mask and base64-encodes the result.
// Empty input yields an empty string.
func Obfuscate(plain []byte, mask byte) string {
	if len(plain) == 0 {
		return ""
	}
	masked := xorBytes(plain, mask)
	encoded := base64.StdEncoding.EncodeToString(masked)
	clear(masked)
	return encoded
}

// Deobfuscate base64-decodes encoded and XORs every byte with mask.
// Returns ErrDecode if encoded is not valid base64.
func Deobfuscate(encoded string, mask byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecode, err)
	}
	// Unmask in place, the decoded buffer is ours.
	for i := range raw {
		raw[i] ^= mask
	}
	return raw, nil
}

func xorBytes(data []byte, mask byte) []byte {
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ mask
	}
	return out
}
