package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"studykit/internal/auth"
	"studykit/internal/books"
	"studykit/internal/config"
	"studykit/internal/database"
	"studykit/internal/generation"
	"studykit/internal/ingest"
	"studykit/internal/routes"
	"studykit/internal/storage"
	"studykit/internal/users"
	"studykit/pkg/logging"
	pkgroutes "studykit/pkg/routes"
)

type Application struct {
	config  *config.Config
	db      *sql.DB
	logger  *slog.Logger
	storage storage.System
	backend generation.Client
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Finalize(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger = logging.New(&cfg.Logging)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	backend, err := generation.NewGemini(context.Background(), &cfg.Gemini, logger)
	if err != nil {
		logger.Error("failed to initialize generation backend", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	app := &Application{
		config:  cfg,
		db:      db,
		logger:  logger,
		storage: store,
		backend: backend,
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.routes(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr)

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	err = <-shutdownError
	if err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func (app *Application) routes() http.Handler {
	cfg := app.config

	userSys := users.New(app.db, app.logger)
	userHandler := users.NewHandler(userSys, app.logger,
		[]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTLDuration())

	gate := auth.NewGate([]byte(cfg.Auth.JWTSecret), users.NewResolver(userSys), app.logger)

	bookSys := books.New(app.db, app.storage, app.logger, cfg.Pagination)
	bookHandler := books.NewHandler(bookSys, app.logger, cfg.Pagination)

	pipeline := ingest.New(app.storage, app.backend, app.logger)
	ingestHandler := ingest.NewHandler(pipeline, app.storage, app.logger,
		cfg.Storage.MaxUploadSizeBytes())

	sys := routes.New(app.logger)
	sys.RegisterRoute(healthz())
	sys.RegisterGroup(userHandler.Routes())

	bookGroup := bookHandler.Routes()
	bookGroup.Middleware = gate.Require
	sys.RegisterGroup(bookGroup)

	ingestGroup := ingestHandler.Routes()
	ingestGroup.Middleware = gate.Require
	sys.RegisterGroup(ingestGroup)

	return app.enableCORS(sys.Build())
}

func healthz() pkgroutes.Route {
	return pkgroutes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
	}
}
