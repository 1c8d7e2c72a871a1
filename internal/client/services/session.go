package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/hotelbook/internal/client/client"
	"github.com/dmitrijs2005/hotelbook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
)

// sessionStore keeps the current session token and email in the local
// metadata table.
type sessionStore struct {
	db *sql.DB
}

func (s sessionStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// token returns client.ErrNotLoggedIn when no session is stored.
func (s sessionStore) token(ctx context.Context) (string, error) {
	token, err := s.repo(s.db).Get(ctx, metadata.KeyToken)
	if errors.Is(err, common.ErrorNotFound) {
		return "", client.ErrNotLoggedIn
	}
	return token, err
}

func (s sessionStore) email(ctx context.Context) (string, error) {
	email, err := s.repo(s.db).Get(ctx, metadata.KeyEmail)
	if errors.Is(err, common.ErrorNotFound) {
		return "", client.ErrNotLoggedIn
	}
	return email, err
}

func (s sessionStore) save(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, metadata.KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyEmail, email)
	})
}

func (s sessionStore) clear(ctx context.Context) error {
	return s.repo(s.db).Clear(ctx)
}

// forgetIfRevoked drops the stored session when the server rejected it.
func (s sessionStore) forgetIfRevoked(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if cerr := s.clear(ctx); cerr != nil {
			return errors.Join(err, cerr)
		}
	}
	return err
}
