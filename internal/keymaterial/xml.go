package keymaterial

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
)

// rsaKeyValue is the XML key-parameter document, one element per component.
type rsaKeyValue struct {
	XMLName  xml.Name `xml:"RSAKeyValue"`
	Modulus  string   `xml:"Modulus"`
	Exponent string   `xml:"Exponent"`
	P        string   `xml:"P,omitempty"`
	Q        string   `xml:"Q,omitempty"`
	DP       string   `xml:"DP,omitempty"`
	DQ       string   `xml:"DQ,omitempty"`
	InverseQ string   `xml:"InverseQ,omitempty"`
	D        string   `xml:"D,omitempty"`
}

// ParseXML parses an <RSAKeyValue> document into a record.
//
// Each component is base64 of an unsigned big-endian integer. Returns
// ErrKeyParse if the document is malformed, a component is not valid base64 or
// does not fit its width, or the private components are inconsistent.
func ParseXML(doc []byte) (*KeyMaterial, error) {
	var kv rsaKeyValue
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	if err := decoder.Decode(&kv); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
	}
	if err := expectEOF(decoder); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
	}

	raw := map[string][]byte{}
	defer func() {
		for _, b := range raw {
			clear(b)
		}
	}()
	fields := []struct {
		name  string
		value string
	}{
		{"Modulus", kv.Modulus},
		{"Exponent", kv.Exponent},
		{"P", kv.P},
		{"Q", kv.Q},
		{"DP", kv.DP},
		{"DQ", kv.DQ},
		{"InverseQ", kv.InverseQ},
		{"D", kv.D},
	}
	for _, f := range fields {
		value := strings.TrimSpace(f.value)
		if value == "" {
			continue
		}
		b, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrKeyParse, f.name, err)
		}
		raw[f.name] = b
	}

	material, err := fromRawComponents(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyParse, err)
	}
	return material, nil
}

// MarshalXML renders the record as an <RSAKeyValue> document.
// Public-only records omit the private elements.
func MarshalXML(k *KeyMaterial) ([]byte, error) {
	if !k.HasPublic() {
		return nil, fmt.Errorf("%w: modulus or exponent absent", kerrors.ErrInvalidKey)
	}
	enc := base64.StdEncoding.EncodeToString
	kv := rsaKeyValue{
		Modulus:  enc(k.Modulus),
		Exponent: enc(k.Exponent),
	}
	if k.HasPrivate() {
		kv.P = enc(k.P)
		kv.Q = enc(k.Q)
		kv.DP = enc(k.DP)
		kv.DQ = enc(k.DQ)
		kv.InverseQ = enc(k.InverseQ)
		kv.D = enc(k.D)
	}
	return xml.Marshal(kv)
}

// expectEOF rejects anything but whitespace after the root element.
func expectEOF(decoder *xml.Decoder) error {
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if cd, ok := tok.(xml.CharData); ok && len(bytes.TrimSpace(cd)) == 0 {
			continue
		}
		return fmt.Errorf("unexpected content after RSAKeyValue element")
	}
}

// fromRawComponents applies width rules and, for private records, checks consistency.
func fromRawComponents(raw map[string][]byte) (*KeyMaterial, error) {
	if len(raw["Modulus"]) == 0 || len(raw["Exponent"]) == 0 {
		return nil, fmt.Errorf("document lacks Modulus or Exponent")
	}

	modulus, err := normalizeModulus(raw["Modulus"])
	if err != nil {
		return nil, err
	}
	exponent := bytes.TrimLeft(raw["Exponent"], "\x00")
	if _, err := exponentInt(exponent); err != nil {
		return nil, err
	}

	k := &KeyMaterial{
		Modulus:  modulus,
		Exponent: append([]byte(nil), exponent...),
	}

	size := len(modulus)
	half := halfWidth(size)
	private := []struct {
		name  string
		dst   *[]byte
		width int
	}{
		{"D", &k.D, size},
		{"P", &k.P, half},
		{"Q", &k.Q, half},
		{"DP", &k.DP, half},
		{"DQ", &k.DQ, half},
		{"InverseQ", &k.InverseQ, half},
	}
	for _, c := range private {
		b := raw[c.name]
		if len(b) == 0 {
			continue
		}
		normalized, err := normalizeWidth(b, c.width)
		if err != nil {
			k.Wipe()
			return nil, fmt.Errorf("%s: %v", c.name, err)
		}
		*c.dst = normalized
	}

	if k.HasPrivate() {
		priv, err := k.buildPrivateKey()
		if err != nil {
			k.Wipe()
			return nil, err
		}
		WipePrivateKey(priv)
	}
	return k, nil
}
