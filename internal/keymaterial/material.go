package keymaterial

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
)

// minModulusBytes rejects toy moduli that cannot carry PKCS#1 v1.5 padding.
const minModulusBytes = 64

// maxExponentBits matches the largest exponent crypto/rsa accepts.
const maxExponentBits = 31

// KeyMaterial is the numeric component set of an RSA key pair.
type KeyMaterial struct {
	Modulus  []byte
	Exponent []byte
	D        []byte
	P        []byte
	Q        []byte
	DP       []byte
	DQ       []byte
	InverseQ []byte
}

// Size returns the modulus length in bytes.
func (k *KeyMaterial) Size() int {
	if k == nil {
		return 0
	}
	return len(k.Modulus)
}

// HasPublic reports whether the modulus and public exponent are present.
func (k *KeyMaterial) HasPublic() bool {
	return k != nil && len(k.Modulus) > 0 && len(k.Exponent) > 0
}

// HasPrivate reports whether every private component is present.
func (k *KeyMaterial) HasPrivate() bool {
	if !k.HasPublic() {
		return false
	}
	for _, c := range k.privateComponents() {
		if len(c) == 0 {
			return false
		}
	}
	return true
}

// Public returns a public-only copy of the record.
func (k *KeyMaterial) Public() *KeyMaterial {
	if k == nil {
		return nil
	}
	return &KeyMaterial{
		Modulus:  append([]byte(nil), k.Modulus...),
		Exponent: append([]byte(nil), k.Exponent...),
	}
}

// Fingerprint returns the hex SHA-256 digest of the modulus.
// It identifies a key in logs without revealing any private component.
func (k *KeyMaterial) Fingerprint() string {
	if k == nil || len(k.Modulus) == 0 {
		return ""
	}
	sum := sha256.Sum256(k.Modulus)
	return hex.EncodeToString(sum[:])
}

// Wipe zeroes every component and drops the references.
func (k *KeyMaterial) Wipe() {
	if k == nil {
		return
	}
	for _, c := range k.allComponents() {
		clear(*c)
		*c = nil
	}
}

// WipePrivateKey zeroes the private integers of priv in place.
func WipePrivateKey(priv *rsa.PrivateKey) {
	if priv == nil {
		return
	}
	ints := []*big.Int{priv.D, priv.Precomputed.Dp, priv.Precomputed.Dq, priv.Precomputed.Qinv}
	ints = append(ints, priv.Primes...)
	for _, v := range ints {
		if v != nil {
			clear(v.Bits())
			v.SetInt64(0)
		}
	}
}

func (k *KeyMaterial) privateComponents() [][]byte {
	return [][]byte{k.D, k.P, k.Q, k.DP, k.DQ, k.InverseQ}
}

func (k *KeyMaterial) allComponents() []*[]byte {
	return []*[]byte{&k.Modulus, &k.Exponent, &k.D, &k.P, &k.Q, &k.DP, &k.DQ, &k.InverseQ}
}

// PublicKey builds an *rsa.PublicKey from the public components.
// Returns ErrInvalidKey if they are missing or out of range.
func (k *KeyMaterial) PublicKey() (*rsa.PublicKey, error) {
	if !k.HasPublic() {
		return nil, fmt.Errorf("%w: modulus or exponent absent", kerrors.ErrInvalidKey)
	}
	e, err := exponentInt(k.Exponent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(k.Modulus), E: e}, nil
}

// PrivateKey builds a validated *rsa.PrivateKey from the record.
// Returns ErrInvalidKey if private components are missing or inconsistent.
func (k *KeyMaterial) PrivateKey() (*rsa.PrivateKey, error) {
	if !k.HasPrivate() {
		return nil, fmt.Errorf("%w: record is public-only", kerrors.ErrInvalidKey)
	}
	priv, err := k.buildPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	return priv, nil
}

func (k *KeyMaterial) buildPrivateKey() (*rsa.PrivateKey, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return nil, err
	}

	priv := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         new(big.Int).SetBytes(k.D),
		Primes: []*big.Int{
			new(big.Int).SetBytes(k.P),
			new(big.Int).SetBytes(k.Q),
		},
	}
	if err := priv.Validate(); err != nil {
		return nil, err
	}

	p, q := priv.Primes[0], priv.Primes[1]
	one := big.NewInt(1)
	dp := new(big.Int).Mod(priv.D, new(big.Int).Sub(p, one))
	dq := new(big.Int).Mod(priv.D, new(big.Int).Sub(q, one))
	qinv := new(big.Int).ModInverse(q, p)
	if qinv == nil {
		return nil, fmt.Errorf("Q has no inverse modulo P")
	}
	if dp.Cmp(new(big.Int).SetBytes(k.DP)) != 0 {
		return nil, fmt.Errorf("DP does not match D mod (P-1)")
	}
	if dq.Cmp(new(big.Int).SetBytes(k.DQ)) != 0 {
		return nil, fmt.Errorf("DQ does not match D mod (Q-1)")
	}
	if qinv.Cmp(new(big.Int).SetBytes(k.InverseQ)) != 0 {
		return nil, fmt.Errorf("InverseQ does not match Q^-1 mod P")
	}

	priv.Precompute()
	return priv, nil
}

// FromPrivateKey maps a two-prime RSA private key into a record with exact widths.
func FromPrivateKey(priv *rsa.PrivateKey) (*KeyMaterial, error) {
	if priv == nil || priv.N == nil || priv.D == nil {
		return nil, fmt.Errorf("%w: private key is empty", kerrors.ErrInvalidKey)
	}
	if len(priv.Primes) != 2 {
		return nil, fmt.Errorf("%w: expected 2 primes, got %d", kerrors.ErrInvalidKey, len(priv.Primes))
	}
	priv.Precompute()

	pubMaterial, err := FromPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, err
	}

	size := pubMaterial.Size()
	half := halfWidth(size)
	values := []struct {
		name  string
		value *big.Int
		width int
	}{
		{"D", priv.D, size},
		{"P", priv.Primes[0], half},
		{"Q", priv.Primes[1], half},
		{"DP", priv.Precomputed.Dp, half},
		{"DQ", priv.Precomputed.Dq, half},
		{"InverseQ", priv.Precomputed.Qinv, half},
	}

	out := make([][]byte, len(values))
	for i, v := range values {
		b, err := fixedWidth(v.value, v.width)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidKey, v.name, err)
		}
		out[i] = b
	}

	pubMaterial.D = out[0]
	pubMaterial.P = out[1]
	pubMaterial.Q = out[2]
	pubMaterial.DP = out[3]
	pubMaterial.DQ = out[4]
	pubMaterial.InverseQ = out[5]
	return pubMaterial, nil
}

// FromPublicKey maps an RSA public key into a public-only record.
func FromPublicKey(pub *rsa.PublicKey) (*KeyMaterial, error) {
	if pub == nil || pub.N == nil || pub.N.Sign() <= 0 {
		return nil, fmt.Errorf("%w: public key is empty", kerrors.ErrInvalidKey)
	}
	if pub.E < 2 {
		return nil, fmt.Errorf("%w: public exponent %d too small", kerrors.ErrInvalidKey, pub.E)
	}
	return &KeyMaterial{
		Modulus:  pub.N.Bytes(),
		Exponent: big.NewInt(int64(pub.E)).Bytes(),
	}, nil
}

func halfWidth(size int) int {
	return (size + 1) / 2
}

// fixedWidth encodes v as exactly width big-endian bytes.
func fixedWidth(v *big.Int, width int) ([]byte, error) {
	if v == nil || v.Sign() < 0 {
		return nil, fmt.Errorf("value is missing or negative")
	}
	if (v.BitLen()+7)/8 > width {
		return nil, fmt.Errorf("value needs %d bytes, width is %d", (v.BitLen()+7)/8, width)
	}
	return v.FillBytes(make([]byte, width)), nil
}

// normalizeWidth strips a single leading sign byte and left-pads to width.
// The numeric value is preserved exactly; anything wider is rejected.
func normalizeWidth(b []byte, width int) ([]byte, error) {
	if len(b) == width+1 && b[0] == 0x00 {
		b = b[1:]
	}
	if len(b) > width {
		return nil, fmt.Errorf("%d bytes exceeds width %d", len(b), width)
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out, nil
}

func normalizeModulus(b []byte) ([]byte, error) {
	if len(b) > 0 && b[0] == 0x00 {
		b = b[1:]
	}
	if len(b) == 0 || b[0] == 0x00 {
		return nil, fmt.Errorf("modulus is empty or has extra leading zeros")
	}
	if len(b) < minModulusBytes {
		return nil, fmt.Errorf("modulus of %d bytes is below minimum %d", len(b), minModulusBytes)
	}
	return append([]byte(nil), b...), nil
}

func exponentInt(b []byte) (int, error) {
	e := new(big.Int).SetBytes(b)
	if e.BitLen() > maxExponentBits {
		return 0, fmt.Errorf("public exponent too large")
	}
	if e.Int64() < 2 {
		return 0, fmt.Errorf("public exponent too small")
	}
	return int(e.Int64()), nil
}
