// Package services contains application services for the hotelbook CLI.
// The auth service owns the local session; the booking service borrows its
// token for every call.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/models"
)

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Register / Login: authenticate against the server and persist the session.
//   - Logout: revoke the session on the server and forget it locally.
//   - CurrentUser / UpdateProfile: token-scoped profile access.
//   - SessionEmail: email of the stored session, if any.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	SessionEmail(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session sessionStore
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, session: sessionStore{db: db}}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	token, user, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.session.save(ctx, token, user.Email); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	token, user, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.session.save(ctx, token, user.Email); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

// Logout forgets the local session even when the server cannot be reached.
func (a *authService) Logout(ctx context.Context) error {
	token, err := a.session.token(ctx)
	if errors.Is(err, client.ErrNotLoggedIn) {
		return nil
	}
	if err != nil {
		return err
	}

	serverErr := a.client.Logout(ctx, token)
	if err := a.session.clear(ctx); err != nil {
		return err
	}
	if errors.Is(serverErr, client.ErrUnavailable) {
		return fmt.Errorf("local session cleared, server not notified: %w", serverErr)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	token, err := a.session.token(ctx)
	if err != nil {
		return nil, err
	}
	user, err := a.client.User(ctx, token)
	if err != nil {
		return nil, a.session.forgetIfRevoked(ctx, err)
	}
	return user, nil
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	token, err := a.session.token(ctx)
	if err != nil {
		return nil, err
	}
	user, err := a.client.UpdateUser(ctx, token, upd)
	if err != nil {
		return nil, a.session.forgetIfRevoked(ctx, err)
	}
	return user, nil
}

func (a *authService) SessionEmail(ctx context.Context) (string, error) {
	return a.session.email(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
