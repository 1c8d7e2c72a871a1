// Package sessions declares the session store: server-side records that
// bind a hashed bearer token to a user until an expiry instant.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/server/models"
)

// Repository defines operations for issuing, looking up and revoking sessions.
type Repository interface {
	// Create stores s. It fails with common.ErrTokenCollision when a session
	// with the same token hash already exists.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session for tokenHash, expired or not.
	// It returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, tokenHash string) (*models.Session, error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, tokenHash string) error

	// DeleteExpired removes every session with expires_at <= now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
