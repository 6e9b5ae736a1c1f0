// Package keymaterial reconstructs RSA key material from an obfuscated blob.
//
// A KeyMaterial record holds the numeric components of an RSA key pair as
// unsigned big-endian byte slices, the same shape as a .NET RSAParameters
// value. Components have exact widths derived from the modulus:
//
//	Modulus, D                     k bytes
//	P, Q, DP, DQ, InverseQ         (k+1)/2 bytes
//	Exponent                       minimal encoding
//
// A record without every private component is public-only and cannot be used
// for decryption.
//
// # Key Source
//
// A Provider is constructed with the obfuscated blob as configuration. The
// blob is the base64 form of an XML <RSAKeyValue> document masked with a
// single byte (see package obfuscation). LoadKeyMaterial unmasks it, parses
// the document, and checks that the private components are mutually
// consistent, so a corrupted blob fails with ErrKeyParse instead of producing
// a wrong key.
//
// # Other Formats
//
// ParseKeyDocument also accepts PEM (PKCS#1, PKCS#8, PKIX) and OpenSSH private
// keys. These are used when building a new blob; the blob itself always
// carries the XML document.
//
// # Lifetime
//
// Records are built per request and never cached. Call Wipe when done to zero
// the private components.
package keymaterial
