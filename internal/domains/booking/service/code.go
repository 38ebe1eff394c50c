package service

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet leaves out easily-confused characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// generateConfirmationCode produces a short human-readable code. Uniqueness
// within the restaurant is NOT guaranteed here; callers must check and retry
// on collision.
func generateConfirmationCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buf), nil
}
