// Package common defines shared constants and sentinel errors used across
// the server and the CLI client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthenticated")

	// Validation errors. Details are appended with fmt.Errorf("%w: ...").
	ErrorValidation = errors.New("validation error")

	// Credential store errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Session store errors.
	ErrTokenCollision = errors.New("session token collision")
)
