package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dmitrijs2005/hotelbook/internal/common"
)

// GenerateSessionToken returns a fresh bearer token: 32 random bytes,
// hex encoded.
func GenerateSessionToken() (string, error) {
	return common.MakeRandHexString(common.SessionTokenBytes)
}

// HashSessionToken returns the value stored server-side for token. Only
// the hash is persisted, so a leaked sessions table cannot be replayed.
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
