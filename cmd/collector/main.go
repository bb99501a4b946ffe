package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oddsdesk/marketfeed/internal/books"
	"github.com/oddsdesk/marketfeed/internal/pkg/api"
	"github.com/oddsdesk/marketfeed/internal/pkg/collector"
	pkgconfig "github.com/oddsdesk/marketfeed/internal/pkg/config"
	"github.com/oddsdesk/marketfeed/internal/pkg/discovery"
	"github.com/oddsdesk/marketfeed/internal/pkg/export"
	"github.com/oddsdesk/marketfeed/internal/pkg/logging"
	"github.com/oddsdesk/marketfeed/internal/pkg/notify"
	"github.com/oddsdesk/marketfeed/internal/pkg/storage"

	// Register all supported book adapters via init().
	_ "github.com/oddsdesk/marketfeed/internal/books/all"
)

const defaultConfigPath = "configs/production.yaml"

type flags struct {
	configPath string
	runFor     time.Duration
	sports     string
	once       bool
}

func main() {
	if err := run(); err != nil {
		slog.Error("Collector failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(&appConfig.Logging, "collector")
	slog.Info("Config loaded", "path", cfg.configPath)

	if cfg.sports != "" {
		appConfig.Collector.Sports = splitList(cfg.sports)
	}

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	// Discovery cache: Redis when configured, in-process otherwise.
	var cache discovery.Cache
	if appConfig.Redis.Addr != "" {
		redisCache, err := storage.NewRedisCache(&appConfig.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		defer redisCache.Close()
		cache = redisCache
	} else {
		cache = discovery.NewMemoryCache()
	}

	client := &http.Client{Timeout: appConfig.Collector.Timeout}
	resolver := discovery.NewManager(client, appConfig.Collector.UserAgent, cache)

	col := collector.New(
		collector.WithClient(client),
		collector.WithUserAgent(appConfig.Collector.UserAgent),
		collector.WithWorkers(appConfig.Collector.Workers),
		collector.WithResolver(resolver),
	)

	// Fail fast on bad configuration before the first cycle.
	for _, sport := range appConfig.Collector.Sports {
		if _, err := col.Adapters(sport, appConfig.Collector.Books); err != nil {
			return err
		}
	}

	var store storage.EventStorage
	if appConfig.Postgres.DSN != "" {
		pg, err := storage.NewPostgresEventStorage(&appConfig.Postgres)
		if err != nil {
			return fmt.Errorf("failed to connect postgres: %w", err)
		}
		defer pg.Close()
		store = pg
	}

	exporter := export.NewExporter(appConfig.Export.Dir, appConfig.Export.ArchiveDir)
	notifier := notify.NewTelegramNotifier(appConfig.Telegram.BotToken, appConfig.Telegram.ChatID)

	// API server runs alongside the collection loop.
	go func() {
		handler := api.NewHandler(col).Router()
		if err := api.Serve(ctx, appConfig.Server, handler); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
		}
	}()

	slog.Info("Starting collection loop",
		"sports", strings.Join(appConfig.Collector.Sports, ", "),
		"interval", appConfig.Collector.Interval)

	loop := &cycleLoop{
		cfg:      appConfig,
		col:      col,
		store:    store,
		exporter: exporter,
		notifier: notifier,
	}
	loop.runCycle(ctx)
	if cfg.once {
		return nil
	}

	ticker := time.NewTicker(appConfig.Collector.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Collector stopped")
			return nil
		case <-ticker.C:
			loop.runCycle(ctx)
		}
	}
}

type cycleLoop struct {
	cfg      *pkgconfig.Config
	col      *collector.Collector
	store    storage.EventStorage
	exporter *export.Exporter
	notifier *notify.TelegramNotifier
}

// runCycle collects every configured sport once. Book failures are reported
// and the cycle moves on; only a cancelled context stops it early.
func (l *cycleLoop) runCycle(ctx context.Context) {
	for _, sport := range l.cfg.Collector.Sports {
		if ctx.Err() != nil {
			return
		}
		report, err := l.col.Collect(ctx, sport, l.cfg.Collector.Books)
		if err != nil {
			// Config errors were checked at startup; reaching one here means
			// the sport catalogue and config diverged mid-run.
			slog.Error("Collection rejected", "sport", sport, "error", err)
			continue
		}

		events := report.Events()
		failed := report.Failed()
		for _, res := range failed {
			if !books.IsConfigError(res.Err) {
				l.notifier.NotifyBookFailure(res.Book, sport, res.Err)
			}
		}
		slog.Info("Cycle complete", "sport", sport, "events", len(events), "failures", len(failed))
		if len(failed) > 0 {
			l.notifier.NotifyCycle(sport, len(events), len(failed))
		}

		if len(events) == 0 {
			continue
		}
		if l.store != nil {
			if err := l.store.StoreEvents(ctx, events); err != nil {
				slog.Error("Failed to store events", "sport", sport, "error", err)
			}
		}
		if path, err := l.exporter.SaveJSON(sport, events, time.Now()); err != nil {
			slog.Error("Failed to export snapshot", "sport", sport, "error", err)
		} else {
			slog.Debug("Snapshot written", "path", path)
		}
	}
	if _, err := l.exporter.ArchiveFiles(24*time.Hour, time.Now()); err != nil {
		slog.Warn("Snapshot archiving failed", "error", err)
	}
}

func parseFlags() flags {
	var cfg flags

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration (e.g. 10s, 1m). 0 = run until SIGINT/SIGTERM")
	flag.StringVar(&cfg.sports, "sports", "", "Override collector.sports: comma-separated sport keys. Empty = use config")
	flag.BoolVar(&cfg.once, "once", false, "Run a single collection cycle and exit")
	flag.Parse()
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping collector...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
		}
	}()
}
