// Package configs loads and saves the keyblob configuration file.
//
// Configuration is TOML, stored at $XDG_CONFIG_HOME/keyblob/config.toml
// unless --config names another file:
//
//	[key_source]
//	blob = "..."          # inline obfuscated blob
//	blob_file = "..."     # or a file holding one
//	mask = 83             # XOR mask, 0-255
//	required = true       # false switches the key source off
//
//	[audit]
//	enabled = true
//	path = "..."          # default $XDG_DATA_HOME/keyblob/audit.jsonl
//
// A missing default file means defaults: the embedded blob, mask 0x53, the
// key source required and auditing on. Unknown keys, an out-of-range mask,
// or both blob and blob_file set are rejected with ErrInvalidConfig.
//
// Config.Provider turns a loaded config into a keymaterial.Provider.
package configs
