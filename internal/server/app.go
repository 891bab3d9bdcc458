// Package server initializes and runs the application server: it opens the
// database, runs schema migrations, wires the services and starts the HTTP
// API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/stackr/internal/logging"
	"github.com/dmitrijs2005/stackr/internal/server/config"
	"github.com/dmitrijs2005/stackr/internal/server/httpapi"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/stackr/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	accountService := services.NewAccountService(db, rm, logger)
	tokenService := services.NewTokenService(db, rm, cfg)
	profileService := services.NewProfileService(db, rm, cfg, logger)
	authService := services.NewAuthService(db, rm, accountService, tokenService, profileService, cfg, logger)
	gameService := services.NewGameService(db, rm)

	api := httpapi.NewServer(cfg, authService, profileService, gameService, logger)

	return &App{config: cfg, logger: logger, db: db, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	if err := app.api.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
