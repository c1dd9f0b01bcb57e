// Package server initializes and runs the application: it opens the
// database, applies migrations, wires repositories into services, and
// starts the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/wemurs1/RoyalVilla/internal/logging"
	"github.com/wemurs1/RoyalVilla/internal/server/auth"
	"github.com/wemurs1/RoyalVilla/internal/server/config"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/repomanager"
	"github.com/wemurs1/RoyalVilla/internal/server/rest"
	"github.com/wemurs1/RoyalVilla/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := repomanager.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	signer, err := auth.NewSigner(cfg.SecretKey, cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	detector := services.NewReuseDetector(db, rm, logger)
	sessions := services.NewSessionService(db, rm, signer, detector, cfg.RefreshTokenValidityDuration, logger)
	users := services.NewUserService(db, rm, logger)
	villas := services.NewVillaService(db, rm, logger)
	amenities := services.NewAmenityService(db, rm, logger)
	images := services.NewImageService(db, rm, cfg)

	srv := rest.NewServer(cfg.EndpointAddrHTTP, logger, signer, sessions, users, villas, amenities, images)

	return &App{config: cfg, logger: logger, server: srv}, nil
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
}
