package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashEmail returns a short, stable fingerprint of an email address for log fields.
// The address is lowercased and trimmed first so the same mailbox always hashes the same.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])[:12]
}
