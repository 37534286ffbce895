package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jahangeer-44/Job-Nest/internal/identity/blob"
	identityhttp "github.com/jahangeer-44/Job-Nest/internal/identity/http"
	"github.com/jahangeer-44/Job-Nest/internal/identity/service"
	"github.com/jahangeer-44/Job-Nest/internal/identity/store"
	"github.com/jahangeer-44/Job-Nest/internal/identity/store/drivers/sqlite"
	"github.com/jahangeer-44/Job-Nest/pkg/cryptox"
	"github.com/jahangeer-44/Job-Nest/pkg/sessionx"
	"github.com/jahangeer-44/Job-Nest/pkg/slogx"
)

const (
	// BuildVersion is overridden at release time via -ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the identity service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sessions *sessionx.Issuer
	uploads  blob.Uploader
	identity *service.IdentityService

	server *http.Server
	router *identityhttp.Router
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Options{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		return nil, err
	}

	if err := app.initUploads(); err != nil {
		return nil, err
	}

	hasher, err := app.newHasher()
	if err != nil {
		return nil, err
	}

	app.identity = &service.IdentityService{
		Store:    app.db,
		Hasher:   hasher,
		Sessions: app.sessions,
		Uploads:  app.uploads,
	}

	app.router = identityhttp.NewRouter(app.sessions, BuildVersion, app.db, app.logger)
	app.router.Identity = app.identity
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: app.router,
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("identity service stopped")
	return nil
}

// initDatabase opens the sqlite store and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessions loads the process-wide signing secret. Outside dev the
// secret must be provided; in dev a throwaway one is generated so the
// service still comes up, at the cost of invalidating sessions across
// restarts.
func (app *Application) initSessions() error {
	secret := app.cfg.SessionSecret
	if secret == "" {
		if app.cfg.Env != "dev" {
			return fmt.Errorf("SESSION_SECRET is required when ENV=%s", app.cfg.Env)
		}
		generated, err := cryptox.LoadOrGeneratePepper(app.cfg.PepperFile + ".session")
		if err != nil {
			return fmt.Errorf("failed to generate dev session secret: %w", err)
		}
		secret = generated
		app.logger.Warn("SESSION_SECRET not set, using generated dev secret")
	}

	app.sessions = sessionx.NewIssuer([]byte(secret), app.cfg.SessionTTL)
	return nil
}

// initUploads builds the S3-backed attachment uploader.
func (app *Application) initUploads() error {
	uploader, err := blob.NewS3Uploader(context.Background(), blob.S3Config{
		Endpoint:      app.cfg.S3Endpoint,
		Region:        app.cfg.S3Region,
		Bucket:        app.cfg.S3Bucket,
		AccessKey:     app.cfg.S3AccessKey,
		SecretKey:     app.cfg.S3SecretKey,
		PublicBaseURL: app.cfg.S3PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object store client: %w", err)
	}
	app.uploads = uploader
	return nil
}

// newHasher loads the pepper and builds the password hasher with the
// process-wide work factor.
func (app *Application) newHasher() (*cryptox.Hasher, error) {
	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	return cryptox.NewHasher(cryptox.DefaultParams(), pepper), nil
}
