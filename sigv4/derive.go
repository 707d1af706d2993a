package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// sha256Hex returns the hex encoded SHA-256 digest of data. Empty input
// produces the well-defined digest of the empty byte sequence, not an
// error.
func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hmacSHA256 returns the raw HMAC-SHA256 of msg under key.
func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// hmacSHA256Hex returns the hex encoded HMAC-SHA256 of msg under key.
func hmacSHA256Hex(key, msg []byte) string {
	return hex.EncodeToString(hmacSHA256(key, msg))
}
