package crypto

import (
	"strings"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	h := NewHasher("secret")

	first := h.Hash("password", "salt")
	second := h.Hash("password", "salt")

	if first != second {
		t.Errorf("Hash() not deterministic: %q != %q", first, second)
	}
}

func TestHashOutputFormat(t *testing.T) {
	h := NewHasher("secret")

	digest := h.Hash("password", "salt")

	// SHA-512 is 64 bytes, 128 hex characters.
	if len(digest) != 128 {
		t.Errorf("Hash() length = %d, want 128", len(digest))
	}
	if strings.ToLower(digest) != digest {
		t.Errorf("Hash() should be lowercase hex, got %q", digest)
	}
}

func TestHashInputSensitivity(t *testing.T) {
	base := NewHasher("secret").Hash("password", "salt")

	tests := []struct {
		name   string
		secret string
		pass   string
		salt   string
	}{
		{"different secret", "other", "password", "salt"},
		{"different password", "secret", "other", "salt"},
		{"different salt", "secret", "password", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewHasher(tt.secret).Hash(tt.pass, tt.salt)
			if got == base {
				t.Errorf("Hash() unchanged when %s", tt.name)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	h := NewHasher("secret")
	digest := h.Hash("password", "salt")

	if !h.Verify("password", "salt", digest) {
		t.Error("Verify() returned false for correct password")
	}
	if h.Verify("wrong", "salt", digest) {
		t.Error("Verify() returned true for wrong password")
	}
	if h.Verify("password", "wrong", digest) {
		t.Error("Verify() returned true for wrong salt")
	}
}
