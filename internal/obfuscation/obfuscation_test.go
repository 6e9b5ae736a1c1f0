package obfuscation

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/keyblob/internal/errors"
)

func TestObfuscateRoundTripAllMasks(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xff, 0x00, 0x53},
		[]byte("<RSAKeyValue></RSAKeyValue>"),
	}

	random := make([]byte, 1024)
	if _, err := rand.Read(random); err != nil {
		t.Fatalf("failed to read random bytes: %v", err)
	}
	inputs = append(inputs, random)

	for mask := 0; mask < 256; mask++ {
		for _, input := range inputs {
			encoded := Obfuscate(input, byte(mask))
			decoded, err := Deobfuscate(encoded, byte(mask))
			if err != nil {
				t.Fatalf("Deobfuscate failed for mask %#x: %v", mask, err)
			}
			if !bytes.Equal(decoded, input) {
				t.Fatalf("round trip mismatch for mask %#x: got %x, want %x", mask, decoded, input)
			}
		}
	}
}

func TestObfuscateEmpty(t *testing.T) {
	if got := Obfuscate(nil, DefaultMask); got != "" {
		t.Errorf("Obfuscate(nil) = %q, want empty string", got)
	}

	decoded, err := Deobfuscate("", DefaultMask)
	if err != nil {
		t.Fatalf("Deobfuscate(\"\") returned error: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Deobfuscate(\"\") = %x, want empty", decoded)
	}
}

func TestObfuscateKnownValue(t *testing.T) {
	// '<' (0x3c) ^ 0x53 = 0x6f, 'R' (0x52) ^ 0x53 = 0x01 -> base64 "bwE="
	got := Obfuscate([]byte("<R"), DefaultMask)
	if got != "bwE=" {
		t.Errorf("Obfuscate(\"<R\") = %q, want %q", got, "bwE=")
	}
}

func TestObfuscateDoesNotModifyInput(t *testing.T) {
	input := []byte("secret key document")
	original := append([]byte(nil), input...)

	_ = Obfuscate(input, DefaultMask)

	if !bytes.Equal(input, original) {
		t.Errorf("Obfuscate modified its input: got %q, want %q", input, original)
	}
}

func TestDeobfuscateInvalidBase64(t *testing.T) {
	testCases := []struct {
		name    string
		encoded string
	}{
		{"IllegalCharacter", "bwE!"},
		{"BadPadding", "bwE"},
		{"URLAlphabet", "bw-_"},
		{"Whitespace", "bw E="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deobfuscate(tc.encoded, DefaultMask)
			if err == nil {
				t.Fatalf("expected error for %q", tc.encoded)
			}
			if !errors.Is(err, kerrors.ErrDecode) {
				t.Errorf("expected ErrDecode, got: %v", err)
			}
		})
	}
}

func TestWrongMaskYieldsDifferentBytes(t *testing.T) {
	input := []byte("<RSAKeyValue>")
	encoded := Obfuscate(input, DefaultMask)

	decoded, err := Deobfuscate(encoded, DefaultMask^0x01)
	if err != nil {
		t.Fatalf("Deobfuscate failed: %v", err)
	}
	if bytes.Equal(decoded, input) {
		t.Error("decoding with the wrong mask should not reproduce the input")
	}
}
