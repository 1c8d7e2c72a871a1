// Package dbtest opens throwaway, fully migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/server/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// NewSQLite returns a migrated database in t's temp dir, closed on cleanup.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", dbx.SQLiteDSN(filepath.Join(t.TempDir(), "hotelbook.db")))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), db, goose.DialectSQLite3, migrations.SQLiteDir); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
