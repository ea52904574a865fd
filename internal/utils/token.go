package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomToken returns n random bytes hex-encoded. Used for blob storage
// names where collisions must be practically impossible.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
