package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/migrations"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

// Bookings returns a bookings.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Bookings(db dbx.DBTX) bookings.Repository {
	return bookings.NewPostgresRepository(db)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the embedded PostgreSQL migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, goose.DialectPostgres, migrations.PostgresDir)
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
