package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"github.com/PolarWolf314/keyblob/internal/keymaterial"
	"github.com/PolarWolf314/keyblob/internal/obfuscation"
)

// Config is the on-disk keyblob configuration.
type Config struct {
	KeySource KeySource   `toml:"key_source"`
	Audit     AuditConfig `toml:"audit"`
}

// KeySource selects the obfuscated key blob and how to unmask it.
//
// At most one of Blob and BlobFile may be set. When neither is set the
// embedded default blob is used.
type KeySource struct {
	Blob     string `toml:"blob,omitempty"`
	BlobFile string `toml:"blob_file,omitempty"`
	Mask     int    `toml:"mask"`
	Required bool   `toml:"required"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		KeySource: KeySource{
			Mask:     int(obfuscation.DefaultMask),
			Required: true,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// Load reads the config at path on top of Default.
//
// An empty path means the default location under ResolvePaths, and a
// missing file there yields the defaults. A path given explicitly must
// exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		paths, err := ResolvePaths()
		if err != nil {
			return nil, err
		}
		path = paths.ConfigFile()
	}

	config := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		if errors.Is(err, kerrors.ErrInvalidConfig) {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to load config %s: %w: %v", path, kerrors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return config, nil
}

// Save writes config to path, or to the default location when path is empty.
func Save(path string, config *Config) error {
	if path == "" {
		paths, err := ResolvePaths()
		if err != nil {
			return err
		}
		path = paths.ConfigFile()
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate reports ErrInvalidConfig for out-of-range or conflicting values.
func (c *Config) Validate() error {
	if c.KeySource.Mask < 0 || c.KeySource.Mask > 0xff {
		return fmt.Errorf("%w: key_source.mask must be between 0 and 255, got %d",
			kerrors.ErrInvalidConfig, c.KeySource.Mask)
	}
	if c.KeySource.Blob != "" && c.KeySource.BlobFile != "" {
		return fmt.Errorf("%w: key_source.blob and key_source.blob_file are mutually exclusive",
			kerrors.ErrInvalidConfig)
	}
	return nil
}

// MaskByte returns the configured XOR mask.
func (c *Config) MaskByte() byte {
	return byte(c.KeySource.Mask)
}

// BlobOrigin describes where the key blob comes from: "inline",
// "file:<path>" or "embedded".
func (c *Config) BlobOrigin() string {
	switch {
	case c.KeySource.Blob != "":
		return "inline"
	case c.KeySource.BlobFile != "":
		return "file:" + c.KeySource.BlobFile
	default:
		return "embedded"
	}
}

// Provider builds the key material provider this config describes.
func (c *Config) Provider() (*keymaterial.Provider, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	blob := c.KeySource.Blob
	switch {
	case blob != "":
	case c.KeySource.BlobFile != "":
		data, err := os.ReadFile(c.KeySource.BlobFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read key_source.blob_file: %w", err)
		}
		blob = strings.TrimSpace(string(data))
	default:
		blob = keymaterial.DefaultBlob
	}

	return keymaterial.NewProvider(blob, c.KeySource.Required), nil
}

// AuditPath returns the audit log path, or "" when auditing is disabled.
func (c *Config) AuditPath() (string, error) {
	if !c.Audit.Enabled {
		return "", nil
	}
	if c.Audit.Path != "" {
		return filepath.Clean(c.Audit.Path), nil
	}
	paths, err := ResolvePaths()
	if err != nil {
		return "", err
	}
	return paths.AuditFile(), nil
}
