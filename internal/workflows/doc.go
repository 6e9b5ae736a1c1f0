// Package workflows implements the business logic behind keyblob commands.
//
// Each workflow takes a context and an options struct and returns a result
// struct or an error. Commands parse flags, run a spinner and format output.
// Workflows do the rest:
//
//   - Encrypt, Decrypt: RSA PKCS#1 v1.5 on short text
//   - Seal, Open: secretbox envelopes for payloads of any size
//   - Obfuscate: turn an XML, PEM or OpenSSH key into a blob
//   - Inspect, ExportPublic: describe or export the configured key
//   - Log: read and filter the audit log
//
// Every options struct embeds Runtime, which carries the loaded config and
// the logger. Key material is loaded fresh for each call from the configured
// provider and wiped before the workflow returns. Each operation appends one
// entry to the audit log; audit failures are logged as warnings only.
//
// Contexts are checked once on entry. RSA operations are short and have no
// cancellation points.
//
// Errors wrap the sentinels in internal/errors:
//
//	result, err := workflows.Decrypt(ctx, workflows.DecryptOptions{
//	    Runtime:    workflows.Runtime{Config: cfg, Logger: log},
//	    Ciphertext: ciphertext,
//	})
//	if errors.Is(err, kerrors.ErrDecryption) {
//	    // ciphertext does not match the key
//	}
package workflows
