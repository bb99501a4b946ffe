package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
collector:
  sports: [nba, nhl]
  books: [draftkings]
  workers: 8
server:
  port: 9090
postgres:
  dsn: "postgres://localhost/marketfeed?sslmode=disable"
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Collector.Sports) != 2 || cfg.Collector.Sports[0] != "nba" {
		t.Errorf("Sports = %v", cfg.Collector.Sports)
	}
	if cfg.Collector.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Collector.Workers)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	// Unset fields pick up defaults.
	if cfg.Collector.Interval != 5*time.Minute {
		t.Errorf("Interval = %v, want default 5m", cfg.Collector.Interval)
	}
	if cfg.Export.Dir != "data" {
		t.Errorf("Export.Dir = %q, want data", cfg.Export.Dir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
collector:
  sports: [nba]
server:
  port: 8080
`)
	t.Setenv("MARKETFEED_SPORTS", "mlb,nhl")
	t.Setenv("MARKETFEED_PORT", "9999")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Collector.Sports) != 2 || cfg.Collector.Sports[0] != "mlb" {
		t.Errorf("Sports = %v, want [mlb nhl]", cfg.Collector.Sports)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}
