// Command seed 從 YAML 檔建立分類、獎勵與使用者
//
//	seed -catalog catalog.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/app"
	"github.com/jackyeh168/channel_points/src/internal/config"
	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/actions"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/logging"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogPath := flag.String("catalog", "catalog.yaml", "path to the YAML catalog")
	flag.Parse()

	if err := run(ctx, *catalogPath); err != nil {
		fmt.Fprintf(os.Stderr, "error running seed: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context, catalogPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}
	logger := logging.SetupJSON(logging.ParseLevel(cfg.LogLevel))

	catalog, err := LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	db, err := persistence.Open(persistence.Options{
		Driver:        cfg.DBDriver,
		DSN:           cfg.DatabaseURL,
		SlowThreshold: time.Second,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer persistence.Close(db)

	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}

	// 只用於驗證獎勵設定，不會執行動作
	registry := action.NewRegistry()
	if err := actions.RegisterBuiltins(registry, actions.Dependencies{Logger: logger}); err != nil {
		return fmt.Errorf("register actions: %w", err)
	}
	registry.Seal()

	uc := app.NewUseCases(app.Options{DB: db, Actions: registry, Logger: logger})
	_, err = catalog.Apply(ctx, uc, logger)
	return err
}
