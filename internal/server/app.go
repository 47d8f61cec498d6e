// Package server initializes and runs the application: it opens the
// database, applies migrations, seeds the base data, and starts the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/acamacho/dulceria/internal/logging"
	"github.com/acamacho/dulceria/internal/server/auth"
	"github.com/acamacho/dulceria/internal/server/config"
	"github.com/acamacho/dulceria/internal/server/repositories/repomanager"
	"github.com/acamacho/dulceria/internal/server/seed"
	"github.com/acamacho/dulceria/internal/server/services"
	"github.com/acamacho/dulceria/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *web.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	seeder := seed.NewSeeder(rm.Roles(db), rm.Users(db), rm.Products(db), hasher, logger)
	if err := seeder.Run(ctx); err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}

	userService := services.NewUserService(db, rm, tokens, hasher)
	federationService := services.NewFederationService(db, rm, logger)
	productService := services.NewProductService(db, rm)
	reviewService := services.NewReviewService(db, rm)
	imageService := services.NewImageService(cfg)

	srv := web.NewServer(cfg, logger, db, rm, tokens,
		userService, federationService, productService, reviewService, imageService)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
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

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()
	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
