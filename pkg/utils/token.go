package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a random hex token for password reset links.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
