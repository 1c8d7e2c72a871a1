package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them, so the final string is twice as long.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Emails are stored and compared in this form only.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BearerToken extracts the token from an Authorization header value.
// It returns an empty string when the header is empty or uses another scheme.
func BearerToken(header string) string {
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}

// WipeByteArray zeroes b in place.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
