package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, password_hash, first_name, last_name, phone)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, phone, created_at, updated_at FROM users
		 WHERE email = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, phone, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	query :=
		`UPDATE users SET
		   first_name = COALESCE(NULLIF($2, ''), first_name),
		   last_name  = COALESCE(NULLIF($3, ''), last_name),
		   phone      = COALESCE(NULLIF($4, ''), phone),
		   updated_at = now()
		 WHERE id = $1
		 RETURNING id, email, password_hash, first_name, last_name, phone, created_at, updated_at
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id, upd.FirstName, upd.LastName, upd.Phone))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
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
