// Package errors provides typed error values for keyblob.
//
// Using sentinel errors allows callers to tell configuration problems (a bad
// embedded blob) from usage problems (an oversized plaintext) and data
// problems (corrupted ciphertext) with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Encoding errors: ErrDecode, ErrEmptyInput
//   - Key errors: ErrKeyParse, ErrInvalidKey, ErrKeySourceDisabled,
//     ErrPassphraseRequired, ErrUnsupportedKeyFormat
//   - Crypto errors: ErrPayloadTooLarge, ErrDecryption
//   - Config and usage errors: ErrInvalidConfig, ErrInvalidDateFormat
//
// None of these conditions are transient, so callers should not retry.
// Category maps an error to a stable name for audit records.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return nil, fmt.Errorf("%w: modulus: %v", kerrors.ErrKeyParse, err)
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryption) {
//	    // Show user-friendly message
//	}
package errors
