package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// randomBytes is the length of the raw random material behind tokens and
// salts; hex encoding doubles it on the wire.
const randomBytes = 48

// GenerateToken returns a new hex-encoded access token from a secure random
// source. A randomness failure is returned as an error, never papered over
// with a predictable value.
func GenerateToken() (string, error) {
	return randomHex()
}

// GenerateSalt returns a new hex-encoded per-user salt.
func GenerateSalt() (string, error) {
	return randomHex()
}

func randomHex() (string, error) {
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
