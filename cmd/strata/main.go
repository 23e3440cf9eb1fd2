package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/strata-lab/strata/internal/aggregation"
	"github.com/strata-lab/strata/internal/config"
	"github.com/strata-lab/strata/internal/core/aggregate"
	"github.com/strata-lab/strata/internal/core/schema"
	"github.com/strata-lab/strata/internal/core/storage/postgres"
	"github.com/strata-lab/strata/internal/migrations"
	"github.com/strata-lab/strata/internal/server"
)

func main() {
	configPath := flag.String("config", "strata.yaml", "Path to configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	catalog, err := schema.LoadDir(cfg.Catalog.Path)
	if err != nil {
		slog.Error("Failed to load model catalog", "path", cfg.Catalog.Path, "error", err)
		os.Exit(1)
	}

	models := catalog.Models()
	slog.Info("Model catalog loaded", "path", cfg.Catalog.Path, "models", len(models))
	for _, m := range models {
		if err := dbAdapter.RecordCatalogRevision(context.Background(), m.Name, m.Fingerprint); err != nil {
			slog.Error("Failed to record catalog revision", "model", m.Name, "error", err)
			os.Exit(1)
		}
	}

	engine := aggregate.New(catalog, dbAdapter)
	aggregationSvc := aggregation.NewService(engine)

	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	aggregationSvc.RegisterRoutes(srv.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	// Signal handler triggers the shutdown sequence.
	group.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("Signal received, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	// HTTP server blocks until ctx is cancelled.
	group.Go(func() error {
		return srv.Run(ctx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
