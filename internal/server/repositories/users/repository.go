// Package users declares the credential store: persistent user accounts
// keyed by id and by normalized email.
package users

import (
	"context"

	"github.com/dmitrijs2005/hotelbook/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user and fills in its timestamps. It fails with
	// common.ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound when no user has id.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Update applies the non-empty fields of upd and returns the stored user.
	Update(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
}
