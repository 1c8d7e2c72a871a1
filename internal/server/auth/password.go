// Package auth holds the credential primitives of the server: password
// digests and opaque session tokens.
package auth

import (
	"fmt"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// PasswordHasher turns plaintext passwords into stored digests and checks
// candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// BcryptHasher is a PasswordHasher producing salted bcrypt digests.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside
// bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, maxPasswordBytes)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
