package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings of the stats cache connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens the stats cache client and validates it with a ping. Command
// timeouts are one second; callers treat cache errors as misses.
func Connect(ctx context.Context, cfg Config, logger zerolog.Logger) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		ClientName:   "clan-dashboard",
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("stats cache connected")
	return client, nil
}
