package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/migrations"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends repositories for the embedded, single-file
// backend.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Bookings(db dbx.DBTX) bookings.Repository {
	return bookings.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, goose.DialectSQLite3, migrations.SQLiteDir)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
