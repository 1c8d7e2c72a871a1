package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/hotelbook/internal/client/migrations"
	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/filex"

	_ "modernc.org/sqlite"
)

// InitDatabase opens the CLI state file at path, creating its directory if
// needed, and applies the local migrations.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbx.SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
