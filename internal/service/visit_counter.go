package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"seized-page/internal/domain"
	"seized-page/pkg/redis"
)

// visitCounter keeps informational visit totals in Redis
type visitCounter struct {
	redisClient *redis.Client
	now         func() time.Time
}

// NewVisitCounter creates a new Redis-backed visit counter
func NewVisitCounter(redisClient *redis.Client) VisitCounter {
	return &visitCounter{
		redisClient: redisClient,
		now:         time.Now,
	}
}

// Increment bumps the total and today's counter in one pipeline
func (c *visitCounter) Increment(ctx context.Context) error {
	now := c.now()
	kb := c.redisClient.KeyBuilder
	dailyKey := kb.KeyVisitsDaily(now.Format("2006-01-02"))

	pipe := c.redisClient.Pipeline()
	pipe.Incr(ctx, kb.KeyVisitsTotal())
	pipe.Incr(ctx, dailyKey)
	pipe.Expire(ctx, dailyKey, redis.TTLVisitsDaily)
	pipe.Set(ctx, kb.KeyVisitsLastUpdate(), now.Unix(), redis.TTLVisitsLastUpdate)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment visit counters: %w", err)
	}
	return nil
}

// GetStats retrieves current counter values; missing keys read as zero
func (c *visitCounter) GetStats(ctx context.Context) (*domain.VisitStats, error) {
	day := c.now().Format("2006-01-02")
	kb := c.redisClient.KeyBuilder

	total, err := c.getInt(ctx, kb.KeyVisitsTotal())
	if err != nil {
		return nil, err
	}
	daily, err := c.getInt(ctx, kb.KeyVisitsDaily(day))
	if err != nil {
		return nil, err
	}
	lastUpdate, err := c.getInt(ctx, kb.KeyVisitsLastUpdate())
	if err != nil {
		return nil, err
	}

	stats := &domain.VisitStats{
		TotalVisits: total,
		DailyVisits: daily,
		Day:         day,
	}
	if lastUpdate > 0 {
		stats.LastUpdated = time.Unix(lastUpdate, 0).UTC()
	}

	return stats, nil
}

func (c *visitCounter) getInt(ctx context.Context, key string) (int64, error) {
	val, err := c.redisClient.Get(ctx, key)
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return n, nil
}
