package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/baxromumarov/lead-sieve/internal/api"
	"github.com/baxromumarov/lead-sieve/internal/config"
	"github.com/baxromumarov/lead-sieve/internal/core"
	"github.com/baxromumarov/lead-sieve/internal/metrics"
	"github.com/baxromumarov/lead-sieve/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()

	dbStore, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer dbStore.Close()

	// Run schema migrations to ensure tables exist
	if err := dbStore.RunMigrations(cfg.SchemaPath); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	metrics.Init()

	filter := core.NewFilterService(dbStore)

	ctx := context.Background()

	// Start batch retention loop
	retention := core.NewRetentionService(dbStore, time.Duration(cfg.RetentionDays)*24*time.Hour)
	retention.Start(ctx)

	srv := api.NewServer(dbStore, filter, cfg)

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
