package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken generates the SHA256 hash of an opaque token. Refresh tokens and
// email tokens are both stored in this form; the raw token never reaches the
// database.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash compares a raw token with its stored SHA256 hash.
func CompareTokenHash(token string, storedHash string) bool {
	return HashToken(token) == storedHash
}
