package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
)

// SQLiteRepository implements Repository on the embedded backend. All
// instants are stored in UTC so expires_at compares correctly as text.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		s.TokenHash, s.UserID, s.ExpiresAt.UTC(), s.CreatedAt.UTC())
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrTokenCollision
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Find(ctx context.Context, tokenHash string) (*models.Session, error) {
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token_hash, user_id, expires_at, created_at FROM sessions WHERE token_hash = ?`, tokenHash,
	).Scan(&s.TokenHash, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
