package workflows

import (
	"fmt"

	"github.com/PolarWolf314/keyblob/internal/audit"
	"github.com/PolarWolf314/keyblob/internal/configs"
	"github.com/PolarWolf314/keyblob/internal/keymaterial"
	logger "github.com/PolarWolf314/keyblob/internal/logging"
)

// Runtime carries the configuration and logger shared by every workflow.
// A zero Runtime uses configs.Default and a quiet logger.
type Runtime struct {
	Config *configs.Config
	Logger logger.Logger
}

func (r Runtime) config() *configs.Config {
	if r.Config == nil {
		return configs.Default()
	}
	return r.Config
}

// loadKey loads the configured key material. The caller must Wipe it.
func (r Runtime) loadKey(entry *audit.Entry) (*keymaterial.KeyMaterial, error) {
	config := r.config()
	entry.BlobOrigin = config.BlobOrigin()

	provider, err := config.Provider()
	if err != nil {
		return nil, err
	}

	r.Logger.Debugf("Loading key material from %s blob", config.BlobOrigin())
	key, err := provider.LoadKeyMaterial(config.MaskByte())
	if err != nil {
		return nil, fmt.Errorf("loading key material: %w", err)
	}

	describeKey(entry, key)
	r.Logger.Infof("Loaded %d-bit key %s", key.Size()*8, key.Fingerprint())
	return key, nil
}

// loadPublicKey parses a caller-supplied public key document, or falls back
// to the configured key material when data is empty.
func (r Runtime) loadPublicKey(data []byte, entry *audit.Entry) (*keymaterial.KeyMaterial, error) {
	if len(data) == 0 {
		return r.loadKey(entry)
	}

	entry.BlobOrigin = "public-key"
	key, err := keymaterial.ParseKeyDocument(data, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}

	public := key.Public()
	key.Wipe()
	describeKey(entry, public)
	r.Logger.Infof("Using supplied %d-bit public key %s", public.Size()*8, public.Fingerprint())
	return public, nil
}

// record finishes entry with err and appends it to the audit log. Audit
// failures only produce a warning.
func (r Runtime) record(entry audit.Entry, err error) {
	entry.Finish(err)

	path, pathErr := r.config().AuditPath()
	if pathErr != nil {
		r.Logger.Warnf("Audit log unavailable: %v", pathErr)
		return
	}
	if logErr := audit.Log(path, entry); logErr != nil {
		r.Logger.WarnfAlways("Failed to write audit entry: %v", logErr)
	}
}

func describeKey(entry *audit.Entry, key *keymaterial.KeyMaterial) {
	entry.KeyFingerprint = key.Fingerprint()
	entry.KeyBits = key.Size() * 8
}
