// Package main provides the entry point for the support portal server. It
// selects the storage backend, sets up observability, and serves the HTTP
// API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/handlers"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// Application encapsulates the running server and its storage backend.
type Application struct {
	store  store.Store
	router *gin.Engine
}

// NewApplication opens the storage backend, seeds demo data when
// appropriate, ensures the bootstrap admin exists, and builds the router.
func NewApplication(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Application, error) {
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to open storage backend")
	}

	if err := st.Initialize(ctx); err != nil {
		_ = st.Close()
		return nil, contextutils.WrapError(err, "failed to initialize storage backend")
	}

	svcs := handlers.NewServices(st, logger, cfg)

	if err := svcs.Users.EnsureAdminUser(ctx); err != nil {
		_ = st.Close()
		return nil, contextutils.WrapError(err, "failed to ensure admin user exists")
	}

	router := handlers.NewRouter(cfg, svcs, st.Backend(), logger)

	return &Application{store: st, router: router}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (a *Application) Run(ctx context.Context, port string) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := a.router.Run(":" + port); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		return contextutils.WrapError(err, "server failed")
	}
}

// Shutdown releases the storage backend.
func (a *Application) Shutdown(_ context.Context) error {
	return a.store.Close()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "support-portal")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if sd, ok := tp.(interface{ Shutdown(context.Context) error }); ok {
			if err := sd.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down tracer provider", map[string]interface{}{"error": err.Error(), "provider": "tracer"})
			}
		}
		if mp != nil {
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down meter provider", map[string]interface{}{"error": err.Error(), "provider": "meter"})
			}
		}
	}()

	logger.Info(ctx, "Starting support portal service", map[string]interface{}{
		"port":             cfg.Server.Port,
		"logLevel":         cfg.Server.LogLevel,
		"remoteConfigured": cfg.RemoteConfigured(),
	})

	app, err := NewApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create application", err, nil)
		os.Exit(1)
	}

	appErr := make(chan error, 1)
	go func() {
		if err := app.Run(ctx, cfg.Server.Port); err != nil {
			appErr <- err
		}
	}()

	select {
	case <-shutdownCh:
		logger.Info(ctx, "Received shutdown signal, shutting down gracefully", nil)
	case err := <-appErr:
		logger.Error(ctx, "Application failed", err, nil)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Error during application shutdown", err, nil)
		os.Exit(1)
	}

	logger.Info(ctx, "Shutdown completed successfully", nil)
}
