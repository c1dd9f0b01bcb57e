package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter is the number of random bytes drawn before hex encoding,
// so the resulting string is twice as long. Refresh token secrets use 64
// bytes (512 bits of entropy), which makes collisions practically impossible;
// the store still enforces uniqueness as a backstop.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
