// Package metadata stores the CLI's small key/value state, such as the
// current session token, in the local SQLite database.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyToken = "session_token"
	KeyEmail = "email"
)

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
