package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Signature"

// Verify reports whether signature is the HMAC-SHA256 of raw under secret. The signature is hex,
// case-insensitive, surrounding whitespace ignored. An empty secret or signature never verifies.
func Verify(raw []byte, signature string, secret []byte) bool {
	if len(secret) == 0 {
		return false
	}
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, digest(raw, secret))
}

// Sign returns the lowercase hex signature of raw under secret.
func Sign(raw []byte, secret []byte) string {
	return hex.EncodeToString(digest(raw, secret))
}

func digest(raw, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(raw)
	return mac.Sum(nil)
}
