// Package checksum provides content digests used to detect changed proof
// documents between verification runs.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short returns a 12-character prefix of a digest, for log output.
func Short(sum string) string {
	if len(sum) <= 12 {
		return sum
	}
	return sum[:12]
}
