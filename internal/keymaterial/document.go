package keymaterial

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
	"golang.org/x/crypto/ssh"
)

// ParseKeyDocument parses an RSA key from XML, PEM or OpenSSH encoding.
//
// Supported encodings:
//   - <RSAKeyValue> XML documents
//   - PEM "RSA PRIVATE KEY" (PKCS#1) and "PRIVATE KEY" (PKCS#8)
//   - PEM "PUBLIC KEY" (PKIX) and "RSA PUBLIC KEY" (PKCS#1)
//   - PEM "OPENSSH PRIVATE KEY", optionally passphrase-protected
//
// Returns ErrPassphraseRequired for an encrypted OpenSSH key when passphrase
// is empty, ErrUnsupportedKeyFormat for anything that is not an RSA key in one
// of these encodings, and ErrKeyParse when the document is recognized but
// malformed.
func ParseKeyDocument(data []byte, passphrase []byte) (*KeyMaterial, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: document is empty", kerrors.ErrKeyParse)
	}

	if trimmed[0] == '<' {
		return ParseXML(trimmed)
	}

	block, _ := pem.Decode(trimmed)
	if block == nil {
		return nil, fmt.Errorf("%w: not XML or PEM", kerrors.ErrUnsupportedKeyFormat)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
		}
		return fromParsedPrivate(priv)

	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
		}
		priv, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: PKCS#8 key is %T, not RSA", kerrors.ErrUnsupportedKeyFormat, key)
		}
		return fromParsedPrivate(priv)

	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
		}
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: PKIX key is %T, not RSA", kerrors.ErrUnsupportedKeyFormat, key)
		}
		return FromPublicKey(pub)

	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
		}
		return FromPublicKey(pub)

	case "OPENSSH PRIVATE KEY":
		priv, err := parseOpenSSHPrivateKey(trimmed, passphrase)
		if err != nil {
			return nil, err
		}
		return fromParsedPrivate(priv)
	}

	return nil, fmt.Errorf("%w: PEM block type %q", kerrors.ErrUnsupportedKeyFormat, block.Type)
}

// parseOpenSSHPrivateKey parses an OpenSSH-format RSA private key.
func parseOpenSSHPrivateKey(data []byte, passphrase []byte) (*rsa.PrivateKey, error) {
	var (
		key interface{}
		err error
	)
	if len(passphrase) > 0 {
		key, err = ssh.ParseRawPrivateKeyWithPassphrase(data, passphrase)
	} else {
		key, err = ssh.ParseRawPrivateKey(data)
	}
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, kerrors.ErrPassphraseRequired
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
	}

	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: OpenSSH key is %T, not RSA", kerrors.ErrUnsupportedKeyFormat, key)
	}
	return priv, nil
}

func fromParsedPrivate(priv *rsa.PrivateKey) (*KeyMaterial, error) {
	defer WipePrivateKey(priv)
	material, err := FromPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
	}
	return material, nil
}

// MarshalPublicPEM encodes the public components as a PKIX "PUBLIC KEY" PEM block.
func MarshalPublicPEM(k *KeyMaterial) ([]byte, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
