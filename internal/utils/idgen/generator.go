package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns an identifier of the form "<prefix>_<random>", where
// the random part is `length` characters drawn from [0-9a-z] using crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("prefix must not be empty")
	}
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(idAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}

	return prefix + "_" + string(buf), nil
}

// MustGenerateSecureID is like GenerateSecureID but panics on failure.
// Random source exhaustion is not recoverable at call sites.
func MustGenerateSecureID(prefix string, length int) string {
	id, err := GenerateSecureID(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}
