// Command server 啟動頻道積分 HTTP 服務
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/app"
	"github.com/jackyeh168/channel_points/src/internal/config"
	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/actions"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/events"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/logging"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/overlay"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/ratelimit"
	"github.com/jackyeh168/channel_points/src/internal/interfaces/httpapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error running server: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logger := logging.SetupJSON(logging.ParseLevel(cfg.LogLevel))

	// --- Database ---
	db, err := persistence.Open(persistence.Options{
		Driver:        cfg.DBDriver,
		DSN:           cfg.DatabaseURL,
		SlowThreshold: 200 * time.Millisecond,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if cerr := persistence.Close(db); cerr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("close db: %w", cerr))
		}
	}()

	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}

	// --- Overlay & actions ---
	hub := overlay.NewHub(logger)
	defer hub.Close()

	registry := action.NewRegistry()
	if err := actions.RegisterBuiltins(registry, actions.Dependencies{
		Sink:   hub,
		Logger: logger,
	}); err != nil {
		return fmt.Errorf("register actions: %w", err)
	}
	registry.Seal()

	publisher := events.NewMultiPublisher(
		overlay.NewEventPublisher(hub),
		logging.NewEventPublisher(logger),
	)

	// --- Rate limit (optional) ---
	var limiter httpapi.Limiter
	redisClient, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	switch {
	case err != nil:
		logger.Warn("redis unavailable, redeem rate limit disabled", "error", err)
	case redisClient != nil:
		defer redisClient.Close()
		limiter = ratelimit.NewLimiter(redisClient, cfg.RedeemRateLimit, cfg.RedeemRateWindow)
	}

	// --- HTTP server ---
	router := httpapi.NewRouter(httpapi.Options{
		UseCases: app.NewUseCases(app.Options{
			DB:            db,
			Actions:       registry,
			Publisher:     publisher,
			ActionTimeout: cfg.ActionTimeout,
			Logger:        logger,
		}),
		RedeemLimiter:  limiter,
		Overlay:        overlay.Handler(hub, cfg.CORSAllowedOrigins),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})
	srv := httpapi.NewServer(cfg.Addr(), router)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("shutdown srv: %w", serr))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}
		errCh <- nil
	}()

	logger.Info("server started",
		"addr", cfg.Addr(),
		"db_driver", cfg.DBDriver,
		"action_types", registry.Types(),
		"rate_limit", limiter != nil,
	)

	select {
	case <-ctx.Done():
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}
		return nil
	}
}
