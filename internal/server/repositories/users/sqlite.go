package users

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

// SQLiteRepository stores users in an embedded SQLite database. Timestamps
// are written in UTC so that text comparison matches time order.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

const sqliteUserColumns = `id, email, password_hash, first_name, last_name, phone, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := r.now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+sqliteUserColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, now, now)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+sqliteUserColumns+` FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+sqliteUserColumns+` FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`UPDATE users SET
		   first_name = COALESCE(NULLIF(?, ''), first_name),
		   last_name  = COALESCE(NULLIF(?, ''), last_name),
		   phone      = COALESCE(NULLIF(?, ''), phone),
		   updated_at = ?
		 WHERE id = ?
		 RETURNING `+sqliteUserColumns,
		upd.FirstName, upd.LastName, upd.Phone, r.now().UTC(), id))
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Phone, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
