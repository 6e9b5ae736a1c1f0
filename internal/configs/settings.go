package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "keyblob"

// Paths holds the per-user locations keyblob reads and writes.
type Paths struct {
	ConfigDir string
	DataDir   string
}

// ConfigFile is the default config file location.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.toml")
}

// AuditFile is the default audit log location.
func (p Paths) AuditFile() string {
	return filepath.Join(p.DataDir, "audit.jsonl")
}

// ResolvePaths returns the config and data directories, honoring
// XDG_CONFIG_HOME and XDG_DATA_HOME.
func ResolvePaths() (Paths, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("error getting config directory: %w", err)
		}
		configDir = dir
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("error getting home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return Paths{
		ConfigDir: filepath.Join(configDir, appName),
		DataDir:   filepath.Join(dataDir, appName),
	}, nil
}
