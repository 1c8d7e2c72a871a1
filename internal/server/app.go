// Package server wires configuration, storage, services and the HTTP and
// gRPC endpoints into one process and runs them until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/config"
	"github.com/dmitrijs2005/hotelbook/internal/server/httpapi"
	"github.com/dmitrijs2005/hotelbook/internal/server/metrics"
	"github.com/dmitrijs2005/hotelbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/hotelbook/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
	grpcServer *gs.GRPCServer
	sweeper    *services.SessionSweeper
}

// NewApp opens the configured storage, applies migrations and builds the
// servers. The caller must Run the app to release the database.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if c.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, rm, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	m := metrics.New()

	us := services.NewUserService(db, rm, c, logger, m)
	bs := services.NewBookingService(db, rm, logger, m)

	router, err := httpapi.NewRouter(c, us, bs, logger, m)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("router init error: %w", err)
	}

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: httpapi.NewServer(c.EndpointAddrHTTP, router, logger),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
		sweeper:    services.NewSessionSweeper(db, rm, c.SessionSweepInterval, logger, m),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// runComponent runs fn and cancels the whole app when it fails.
func (app *App) runComponent(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "component failed", "component", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a shutdown signal arrives or one of
// the servers fails, then closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"storage", app.config.StorageBackend, "environment", app.config.Environment)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.runComponent(ctx, cancelFunc, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.runComponent(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.sweeper.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
