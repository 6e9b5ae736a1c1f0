package errors

import "errors"

// Encoding errors indicate malformed text at an interchange boundary.
var (
	// ErrDecode indicates base64 input could not be decoded.
	ErrDecode = errors.New("malformed base64 input")

	// ErrEmptyInput indicates no ciphertext or plaintext was supplied.
	ErrEmptyInput = errors.New("no input provided")
)

// Key errors indicate problems with the key source or the key document itself.
var (
	// ErrKeyParse indicates the deobfuscated bytes are not a valid key document.
	ErrKeyParse = errors.New("key document is malformed")

	// ErrInvalidKey indicates the key lacks the components required for the operation.
	ErrInvalidKey = errors.New("key is missing required components")

	// ErrKeySourceDisabled indicates the key source is not enabled, so no blob is available.
	ErrKeySourceDisabled = errors.New("key source is disabled")

	// ErrPassphraseRequired indicates an encrypted key document was supplied without a passphrase.
	ErrPassphraseRequired = errors.New("passphrase required for encrypted key document")

	// ErrUnsupportedKeyFormat indicates the key document is not XML, PEM or OpenSSH RSA.
	ErrUnsupportedKeyFormat = errors.New("unsupported key document format")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrPayloadTooLarge indicates the plaintext exceeds the padding scheme's capacity for the key size.
	ErrPayloadTooLarge = errors.New("plaintext exceeds capacity for key size")

	// ErrDecryption indicates the ciphertext length or padding did not match the key.
	ErrDecryption = errors.New("decryption failed")
)

// Configuration and usage errors.
var (
	// ErrInvalidConfig indicates the configuration file is malformed or has out-of-range values.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrInvalidDateFormat indicates a date filter was not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

var categories = []struct {
	err  error
	name string
}{
	{ErrDecode, "decode"},
	{ErrEmptyInput, "empty_input"},
	{ErrKeyParse, "key_parse"},
	{ErrInvalidKey, "invalid_key"},
	{ErrKeySourceDisabled, "key_source_disabled"},
	{ErrPassphraseRequired, "passphrase_required"},
	{ErrUnsupportedKeyFormat, "unsupported_key_format"},
	{ErrPayloadTooLarge, "payload_too_large"},
	{ErrDecryption, "decryption"},
	{ErrInvalidConfig, "invalid_config"},
	{ErrInvalidDateFormat, "invalid_date"},
}

// Category returns a stable snake_case name for the sentinel err wraps,
// "" for nil, and "other" for errors outside this package.
func Category(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range categories {
		if errors.Is(err, c.err) {
			return c.name
		}
	}
	return "other"
}
