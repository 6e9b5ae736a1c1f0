// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content by type (commands, paths, fingerprints and so
// on). When colors are available, content is colorized. When NO_COLOR is set
// or the terminal doesn't support colors, text decorations are used instead.
//
//	ui.Code.Sprint("keyblob cipher decrypt")  // Commands
//	ui.Path.Sprint("config.toml")             // File paths
//	ui.Fingerprint.Sprint(fp)                 // Key fingerprints
//	ui.Highlight.Sprint("2048-bit")           // User values
//	ui.Muted.Sprint("embedded")               // De-emphasized text
//
// SuccessLine and FailureLine build the final spinner messages used by every
// command.
//
// When colors are disabled:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Fingerprint: [brackets]
//   - Muted: (parentheses)
//   - Others: no decoration
package ui
