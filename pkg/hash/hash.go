package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// OwnerHashkey derives the stable per-owner key used as the directory of
// that owner's uploaded videos. It never changes for a given username.
func OwnerHashkey(secret, username string) string {
	return SHA256Hex(secret + username)
}

// Short returns the first n hex characters of SHA256(input), or the full
// hash when n exceeds its length. Used to correlate values in logs without
// writing them out.
func Short(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) || n <= 0 {
		return full
	}
	return full[:n]
}
