package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/dbx"
	"github.com/dmitrijs2005/hotelbook/internal/filex"
	"github.com/dmitrijs2005/hotelbook/internal/server/config"
	"github.com/sethvargo/go-retry"
)

// pingBackoff bounds how long Open waits for the database to come up.
var pingBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
}

// Open connects to the backend selected by cfg.StorageBackend, waits for it
// to answer a ping and returns the handle with its RepositoryManager.
// Migrations are not applied here; call RunMigrations.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, RepositoryManager, error) {
	var (
		driver, dsn string
		manager     RepositoryManager
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		driver, dsn, manager = "pgx", cfg.DatabaseDSN, NewPostgresRepositoryManager()
	case config.StorageSQLite:
		path, err := filex.EnsureParentDir(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		driver, dsn, manager = "sqlite", dbx.SQLiteDSN(path), NewSQLiteRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}

	err = retry.Do(ctx, pingBackoff(), func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, manager, nil
}
