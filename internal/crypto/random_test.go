package crypto

import (
	"encoding/hex"
	"testing"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if len(token) != randomBytes*2 {
		t.Errorf("GenerateToken() length = %d, want %d", len(token), randomBytes*2)
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("GenerateToken() not valid hex: %v", err)
	}
}

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() unexpected error: %v", err)
	}

	if len(salt) != randomBytes*2 {
		t.Errorf("GenerateSalt() length = %d, want %d", len(salt), randomBytes*2)
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken() unexpected error: %v", err)
		}
		if seen[token] {
			t.Errorf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}
