package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the SHA-256 digest of the input string as hex.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// SumBytes is the same function taking a []byte.
func SumBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
