// Package server wires configuration, storage, services and transports
// into the running debt manager: the HTTP API and the gRPC health endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/debtmanager/internal/logging"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"github.com/dmitrijs2005/debtmanager/internal/server/config"
	"github.com/dmitrijs2005/debtmanager/internal/server/httpapi"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/memory"
	"github.com/dmitrijs2005/debtmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/debtmanager/internal/server/grpc"
)

// openDB is replaced in tests.
var openDB = repomanager.Open

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	grpc   *gs.GRPCServer
}

// NewApp opens storage, applies migrations and builds both servers. With an
// empty DatabaseDSN the app keeps everything in memory.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if c.RefreshSecretGenerated {
		logger.Warn(ctx, "REFRESH_SECRET_KEY is not set, using a random secret; refresh tokens will not survive a restart")
	}

	db, rm, err := openStorage(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(c.TokenConfig())
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	as, err := services.NewAuthService(db, rm, auth.NewBcryptHasher(c.BcryptCost), tokens)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("auth service init error: %w", err)
	}

	api := httpapi.NewAPI(as, services.NewDebtService(db, rm), services.NewSettingsService(db, rm), logger)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		API:           api,
		Guard:         services.NewGuard(db, rm, tokens),
		Log:           logger,
		IsDevelopment: c.IsDevelopment,
		Metrics:       true,
	})

	// a nil *sql.DB must not reach the health server as a non-nil Pinger
	var pinger gs.Pinger
	if db != nil {
		pinger = db
	}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   httpapi.NewServer(c.HTTPAddress, router, logger),
		grpc:   gs.NewGRPCServer(c.GRPCAddress, logger, pinger),
	}, nil
}

func openStorage(ctx context.Context, c *config.Config, logger logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "DATABASE_DSN is not set, using in-memory storage")
		return nil, memory.NewRepositoryManager(), nil
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("migrations error: %w", err)
	}
	return db, rm, nil
}

// Run serves HTTP and gRPC until ctx is cancelled or one of them fails, in
// which case the other is stopped too.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(ctx) })
	g.Go(func() error { return app.grpc.Run(ctx) })

	err := g.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return err
}

// Close releases the database connection, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
