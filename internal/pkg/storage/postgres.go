// Package storage persists collected market events and backs the discovery
// cache.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/oddsdesk/marketfeed/internal/pkg/config"
	"github.com/oddsdesk/marketfeed/internal/pkg/models"
)

// EventStorage is the persistence surface the collector loop needs.
type EventStorage interface {
	StoreEvents(ctx context.Context, events []models.MarketEvent) error
	LatestEvents(ctx context.Context, sport string, since time.Time) ([]models.MarketEvent, error)
}

var _ EventStorage = (*PostgresEventStorage)(nil)

// PostgresEventStorage keeps one row per (sport, game, book), updated on each
// collection cycle.
type PostgresEventStorage struct {
	db *sql.DB
}

// NewPostgresEventStorage opens the connection, verifies it and creates the
// schema.
func NewPostgresEventStorage(cfg *config.PostgresConfig) (*PostgresEventStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresEventStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL event storage initialized")
	return s, nil
}

func (s *PostgresEventStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS market_events (
		id SERIAL PRIMARY KEY,
		book VARCHAR(100) NOT NULL,
		sport VARCHAR(100) NOT NULL,
		game VARCHAR(500) NOT NULL,
		game_start TIMESTAMP,
		away_team VARCHAR(200) NOT NULL,
		home_team VARCHAR(200) NOT NULL,
		total DECIMAL(8, 2),
		over_price VARCHAR(20),
		under_price VARCHAR(20),
		away_moneyline VARCHAR(20),
		home_moneyline VARCHAR(20),
		away_spread DECIMAL(8, 2),
		home_spread DECIMAL(8, 2),
		away_spread_price VARCHAR(20),
		home_spread_price VARCHAR(20),
		retrieved_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(sport, game, book)
	);

	CREATE INDEX IF NOT EXISTS idx_market_events_sport_retrieved ON market_events(sport, retrieved_at);
	CREATE INDEX IF NOT EXISTS idx_market_events_game_start ON market_events(game_start);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// StoreEvents upserts one row per event. A failed row aborts the batch.
func (s *PostgresEventStorage) StoreEvents(ctx context.Context, events []models.MarketEvent) error {
	if len(events) == 0 {
		return nil
	}
	query := `
	INSERT INTO market_events (
		book, sport, game, game_start, away_team, home_team,
		total, over_price, under_price,
		away_moneyline, home_moneyline,
		away_spread, home_spread, away_spread_price, home_spread_price,
		retrieved_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (sport, game, book) DO UPDATE SET
		game_start = EXCLUDED.game_start,
		away_team = EXCLUDED.away_team,
		home_team = EXCLUDED.home_team,
		total = EXCLUDED.total,
		over_price = EXCLUDED.over_price,
		under_price = EXCLUDED.under_price,
		away_moneyline = EXCLUDED.away_moneyline,
		home_moneyline = EXCLUDED.home_moneyline,
		away_spread = EXCLUDED.away_spread,
		home_spread = EXCLUDED.home_spread,
		away_spread_price = EXCLUDED.away_spread_price,
		home_spread_price = EXCLUDED.home_spread_price,
		retrieved_at = EXCLUDED.retrieved_at
	`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.ExecContext(ctx,
			e.Book, e.Sport, e.Game, nullTime(e.GameStart), e.Away, e.Home,
			e.Total, e.OverPrice, e.UnderPrice,
			e.AwayMoneyline, e.HomeMoneyline,
			e.AwaySpread, e.HomeSpread, e.AwaySpreadPrice, e.HomeSpreadPrice,
			e.RetrievedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert event %q: %w", e.Game, err)
		}
	}
	return tx.Commit()
}

// LatestEvents returns the sport's rows retrieved at or after since, newest
// first.
func (s *PostgresEventStorage) LatestEvents(ctx context.Context, sport string, since time.Time) ([]models.MarketEvent, error) {
	query := `
	SELECT book, sport, game, game_start, away_team, home_team,
	       total, over_price, under_price,
	       away_moneyline, home_moneyline,
	       away_spread, home_spread, away_spread_price, home_spread_price,
	       retrieved_at
	FROM market_events
	WHERE sport = $1 AND retrieved_at >= $2
	ORDER BY retrieved_at DESC, game
	`
	rows, err := s.db.QueryContext(ctx, query, sport, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []models.MarketEvent
	for rows.Next() {
		var (
			e         models.MarketEvent
			gameStart sql.NullTime
		)
		err := rows.Scan(
			&e.Book, &e.Sport, &e.Game, &gameStart, &e.Away, &e.Home,
			&e.Total, &e.OverPrice, &e.UnderPrice,
			&e.AwayMoneyline, &e.HomeMoneyline,
			&e.AwaySpread, &e.HomeSpread, &e.AwaySpreadPrice, &e.HomeSpreadPrice,
			&e.RetrievedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		if gameStart.Valid {
			e.GameStart = gameStart.Time
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the connection pool.
func (s *PostgresEventStorage) Close() error {
	return s.db.Close()
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
