package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"livestock-health/internal/adapters/auth/authsvc"
	"livestock-health/internal/config"
	"livestock-health/internal/metrics"
	"livestock-health/internal/platform/logger"
	"livestock-health/internal/ports/auth"
	"livestock-health/internal/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App,
	})
	defer func() { _ = logger.Zap(log).Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sin AUTH_BASE_URL => modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.Auth.BaseURL != "" {
		client, err := authsvc.NewClient(authsvc.Config{
			BaseURL: cfg.Auth.BaseURL,
			Timeout: cfg.GetAuthTimeout(),
		})
		if err != nil {
			return fmt.Errorf("auth client: %w", err)
		}
		verifier = authsvc.NewVerifier(client)
	} else {
		log.Warn("auth service not configured, accepting X-Debug-User-ID", nil)
	}

	stores, err := router.OpenStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("close storage", map[string]any{"error": err})
		}
	}()

	handler := router.NewRouter(router.Options{
		AuthVerifier:  verifier,
		Stores:        stores,
		Logger:        log,
		Metrics:       metrics.New(),
		Location:      loc,
		CountdownTick: cfg.GetCountdownTick(),
	})

	// WriteTimeout 0 por defecto para no cortar el stream de countdown;
	// BaseContext hace que esos streams terminen con la señal.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
