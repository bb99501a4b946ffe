// Package config loads the service configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Collector CollectorConfig `yaml:"collector"`
	Server    ServerConfig    `yaml:"server"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type CollectorConfig struct {
	Sports    []string      `yaml:"sports" env:"MARKETFEED_SPORTS" envSeparator:","`
	Books     []string      `yaml:"books" env:"MARKETFEED_BOOKS" envSeparator:","`
	Interval  time.Duration `yaml:"interval" env:"MARKETFEED_INTERVAL"`
	Timeout   time.Duration `yaml:"timeout" env:"MARKETFEED_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"MARKETFEED_USER_AGENT"`
	Workers   int           `yaml:"workers" env:"MARKETFEED_WORKERS"`
}

type ServerConfig struct {
	Port              int           `yaml:"port" env:"MARKETFEED_PORT"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"MARKETFEED_POSTGRES_DSN"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"MARKETFEED_REDIS_ADDR"`
	Password string `yaml:"password" env:"MARKETFEED_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"MARKETFEED_REDIS_DB"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"MARKETFEED_TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `yaml:"chat_id" env:"MARKETFEED_TELEGRAM_CHAT_ID"`
}

type ExportConfig struct {
	Dir        string `yaml:"dir" env:"MARKETFEED_EXPORT_DIR"`
	ArchiveDir string `yaml:"archive_dir" env:"MARKETFEED_EXPORT_ARCHIVE_DIR"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"MARKETFEED_LOG_LEVEL"`
}

// Load reads the YAML file, applies environment overrides and fills in
// defaults. A missing file is an error; a missing section is not.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Collector.Interval <= 0 {
		c.Collector.Interval = 5 * time.Minute
	}
	if c.Collector.Timeout <= 0 {
		c.Collector.Timeout = 30 * time.Second
	}
	if c.Collector.Workers <= 0 {
		c.Collector.Workers = 4
	}
	if len(c.Collector.Sports) == 0 {
		c.Collector.Sports = []string{"nba", "nfl"}
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "data"
	}
	if c.Export.ArchiveDir == "" {
		c.Export.ArchiveDir = "data/archive"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
