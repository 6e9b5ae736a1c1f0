// Package utils provides shared helpers for keyblob commands.
//
// # I/O
//
//   - ReadStdin, ReadAllLimited: read piped input with a size cap
//   - InputFromArgsOrStdin: positional argument, else piped stdin
//   - WritePrivateFile: atomic 0600 write for configs and exported blobs
//
// # Terminal
//
//   - ReadPassphrase: hidden prompt on stdin or the controlling terminal
//
// # System
//
//   - CurrentIdentity: identify the caller in audit entries
//
// # Strings
//
//   - TrimTrailingNewline, FormatByteCount
package utils
