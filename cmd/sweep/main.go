// Command sweep reconciles one batch of provisional burn rows and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xenartist/memo.rip/pkg/app/api"
	"github.com/xenartist/memo.rip/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	batch := flag.Int("batch", 0, "Rows to sweep (defaults to sweeper.batch_size)")
	flag.Parse()

	if err := run(*configPath, *batch); err != nil {
		fmt.Fprintf(os.Stderr, "sweep failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, batch int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Store.Backend == config.BackendMemory {
		return fmt.Errorf("sweep needs a persistent store, got %q", cfg.Store.Backend)
	}
	if batch <= 0 {
		batch = cfg.Sweeper.BatchSize
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := api.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	components := api.NewComponents(cfg, store, nil, logger)
	defer components.Stop()

	res, err := components.Sweeper.Sweep(ctx, batch)
	if err != nil {
		return err
	}

	logger.Info("Sweep finished",
		zap.Int("listed", res.Listed),
		zap.Int("reconciled", res.Reconciled),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped),
	)
	return nil
}
