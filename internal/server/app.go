// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/config"
	"github.com/dmitrijs2005/movieapi/internal/server/httpapi"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/movieapi/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

// NewApp validates c and prepares the logger. Nothing is opened until Run.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(os.Stdout, c.LogLevel)

	return &App{config: c, logger: logger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// buildDeps creates the services on top of db.
func (app *App) buildDeps(db *sql.DB) (*httpapi.Deps, error) {
	rm := repomanager.NewPostgresRepositoryManager()

	codec, err := auth.NewCodec([]byte(app.config.SecretKey))
	if err != nil {
		return nil, err
	}

	us, err := services.NewUserService(db, rm, auth.NewBcryptHasher(app.config.BcryptCost), codec, app.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	var posters services.PosterStorage
	if app.config.StorageEnabled() {
		posters = services.NewS3PosterStorage(app.config)
	} else {
		app.logger.Warn(context.Background(), "S3 bucket not configured, poster uploads disabled")
	}

	return &httpapi.Deps{
		Users:      us,
		Movies:     services.NewMovieService(db, rm, posters, app.config.PosterURLValidityDuration),
		MovieTypes: services.NewMovieTypeService(db, rm),
		Tokens:     codec,
		DB:         db,
		Logger:     app.logger,
	}, nil
}

// Run opens the database, applies migrations and serves HTTP until ctx is
// cancelled or the process receives SIGINT, SIGTERM or SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	db, err := repomanager.OpenDB(ctx, app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	if err := repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db); err != nil {
		return err
	}

	deps, err := app.buildDeps(db)
	if err != nil {
		return err
	}

	s := httpapi.NewServer(app.config.HTTPAddr, app.logger, httpapi.NewRouter(*deps))
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("http server error: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
