// Package migrations embeds the goose schema migrations for both storage
// backends. Each backend has its own directory inside Migrations.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Directories inside Migrations.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Up applies every pending migration in dir (PostgresDir or SQLiteDir)
// to db using the given goose dialect.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(Migrations, dir)
	if err != nil {
		return fmt.Errorf("migrations dir %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}
