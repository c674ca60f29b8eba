package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/api/metrics"
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

const defaultStatsTTL = 5 * time.Minute

// StatsCache decorates a StatsProvider with a Redis response cache for clan
// and account lookups. Cache failures fall through to the provider.
// Key formats: stats:clan:<clan_id>, stats:account:<account_id>
type StatsCache struct {
	next   ports.StatsProvider
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewStatsCache(next ports.StatsProvider, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{next: next, client: client, ttl: ttl, logger: logger}
}

func clanKey(id int64) string    { return "stats:clan:" + strconv.FormatInt(id, 10) }
func accountKey(id int64) string { return "stats:account:" + strconv.FormatInt(id, 10) }

func (c *StatsCache) ClanInfo(ctx context.Context, clanID int64) (*domain.Clan, error) {
	key := clanKey(clanID)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var clan domain.Clan
		if jsonErr := json.Unmarshal(raw, &clan); jsonErr == nil {
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return &clan, nil
		}
		metrics.StatsCacheTotal.WithLabelValues("error").Inc()
	case err == redis.Nil:
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.StatsCacheTotal.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("stats cache read failed")
	}

	clan, err := c.next.ClanInfo(ctx, clanID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, map[string]any{key: clan})
	return clan, nil
}

// AccountsInfo serves cached profiles and asks the provider for the rest only.
func (c *StatsCache) AccountsInfo(ctx context.Context, accountIDs []int64) (map[int64]*domain.PlayerProfile, error) {
	out := make(map[int64]*domain.PlayerProfile, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = accountKey(id)
	}

	missing := accountIDs
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		metrics.StatsCacheTotal.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Int("accounts", len(accountIDs)).Msg("stats cache read failed")
	} else {
		missing = nil
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				missing = append(missing, accountIDs[i])
				continue
			}
			var p domain.PlayerProfile
			if err := json.Unmarshal([]byte(s), &p); err != nil {
				missing = append(missing, accountIDs[i])
				continue
			}
			out[accountIDs[i]] = &p
		}
		metrics.StatsCacheTotal.WithLabelValues("hit").Add(float64(len(out)))
		metrics.StatsCacheTotal.WithLabelValues("miss").Add(float64(len(missing)))
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := c.next.AccountsInfo(ctx, missing)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]any, len(fetched))
	for id, p := range fetched {
		out[id] = p
		entries[accountKey(id)] = p
	}
	c.store(ctx, entries)
	return out, nil
}

func (c *StatsCache) AccountTanks(ctx context.Context, accountID int64) ([]domain.TankRef, error) {
	return c.next.AccountTanks(ctx, accountID)
}

func (c *StatsCache) Vehicles(ctx context.Context) (map[int64]domain.Vehicle, error) {
	return c.next.Vehicles(ctx)
}

func (c *StatsCache) store(ctx context.Context, entries map[string]any) {
	if len(entries) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for key, v := range entries {
		raw, err := json.Marshal(v)
		if err != nil {
			continue
		}
		pipe.Set(ctx, key, raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn().Err(fmt.Errorf("stats cache write: %w", err)).Int("keys", len(entries)).Msg("stats cache write failed")
	}
}
