// Command export dumps stored market events for one sport to a JSON
// snapshot, without running a collection cycle.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	pkgconfig "github.com/oddsdesk/marketfeed/internal/pkg/config"
	"github.com/oddsdesk/marketfeed/internal/pkg/export"
	"github.com/oddsdesk/marketfeed/internal/pkg/logging"
	"github.com/oddsdesk/marketfeed/internal/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		sport      string
		since      time.Duration
	)
	flag.StringVar(&configPath, "config", "configs/production.yaml", "Path to config file")
	flag.StringVar(&sport, "sport", "nba", "Sport key to export")
	flag.DurationVar(&since, "since", 24*time.Hour, "Export events retrieved within this window")
	flag.Parse()

	cfg, err := pkgconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(&cfg.Logging, "export")

	store, err := storage.NewPostgresEventStorage(&cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	events, err := store.LatestEvents(ctx, sport, time.Now().Add(-since))
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	if len(events) == 0 {
		slog.Warn("No stored events in window", "sport", sport, "since", since)
		return nil
	}

	exporter := export.NewExporter(cfg.Export.Dir, cfg.Export.ArchiveDir)
	path, err := exporter.SaveJSON(sport, events, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	slog.Info("Export complete", "sport", sport, "events", len(events), "path", path)
	return nil
}
