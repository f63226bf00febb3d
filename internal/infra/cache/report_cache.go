package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"playa-admin/internal/pkg/config"
	"playa-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "reports:"

// NewRedisClient returns nil when Redis is unreachable; callers degrade to
// uncached reads.
func NewRedisClient(cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, report caching disabled", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewReportCache(client *redis.Client, cfg config.RedisConfig, logger *slog.Logger) *ReportCache {
	return &ReportCache{client: client, ttl: cfg.ReportTTL, logger: logger}
}

func (c *ReportCache) Get(ctx context.Context, key string) (*queries.RevenueReport, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("report cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	report := &queries.RevenueReport{}
	if err := json.Unmarshal(raw, report); err != nil {
		c.logger.Warn("report cache entry corrupted, dropping", "key", key, "error", err)
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}
	return report, true
}

func (c *ReportCache) Set(ctx context.Context, key string, report *queries.RevenueReport) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("report cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache write failed", "key", key, "error", err)
	}
}

// InvalidateReports drops every cached report that could include the lot,
// across all actors: lot-scoped keys for that lot plus the unscoped
// ("all") ones. Keys are reports:<from>:<to>:<lot>:<attendant>:<kind>:<actor>.
func (c *ReportCache) InvalidateReports(ctx context.Context, lotID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, reportKeyPrefix+"*", 100).Iterator()
	var stale []string
	for iter.Next(ctx) {
		key := iter.Val()
		parts := strings.Split(key, ":")
		if len(parts) < 4 {
			stale = append(stale, key)
			continue
		}
		if lot := parts[3]; lot == "all" || lot == lotID.String() {
			stale = append(stale, key)
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("report cache scan failed", "lot_id", lotID, "error", err)
		return
	}
	if len(stale) == 0 {
		return
	}
	if err := c.client.Del(ctx, stale...).Err(); err != nil {
		c.logger.Warn("report cache invalidation failed", "lot_id", lotID, "error", err)
	}
}
