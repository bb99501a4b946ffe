package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oddsdesk/marketfeed/internal/pkg/config"
	"github.com/oddsdesk/marketfeed/internal/pkg/discovery"
)

var _ discovery.Cache = (*RedisCache)(nil)

// RedisCache backs league discovery with Redis so multiple collector
// instances share discovered IDs. Backend failures read as cache misses.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (discovery.Entry, bool) {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("redis get failed", "key", key, "error", err)
		}
		return discovery.Entry{}, false
	}
	var e discovery.Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		slog.Warn("redis entry corrupt", "key", key, "error", err)
		return discovery.Entry{}, false
	}
	return e, true
}

func (r *RedisCache) Put(ctx context.Context, key string, e discovery.Entry, ttl time.Duration) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("redis set failed", "key", key, "error", err)
	}
}

// Close releases the Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
