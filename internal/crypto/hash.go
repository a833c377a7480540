package crypto

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Hasher derives password hashes from a process-wide secret. The digest is
// deterministic: the same secret, password and salt always produce the same
// output, across restarts.
type Hasher struct {
	secret string
}

// NewHasher creates a Hasher with the given shared secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: secret}
}

// Hash returns the hex-encoded SHA-512 digest of secret+password+salt.
func (h *Hasher) Hash(password, salt string) string {
	sum := sha512.Sum512([]byte(h.secret + password + salt))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether password hashes to hashedPassword under the given
// salt, using a constant-time comparison.
func (h *Hasher) Verify(password, salt, hashedPassword string) bool {
	candidate := h.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hashedPassword)) == 1
}
