package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-bot/internal/config"
)

// RateLimiter throttles bot interactions per user with a fixed one
// minute window in Redis. The counter key carries the window start, so
// expired windows reset on their own.
type RateLimiter struct {
	client    *redis.Client
	perMinute int
}

func NewRateLimiter(ctx context.Context, cfg config.RedisConfig, perMinute int) (*RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:   cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RateLimiter{client: client, perMinute: perMinute}, nil
}

// Allow reports whether the user may perform another interaction in the
// current window. Redis errors fail open so a cache outage does not
// take the bot down.
func (l *RateLimiter) Allow(ctx context.Context, userID int64) bool {
	key := fmt.Sprintf("ratelimit:%d:%d", userID, time.Now().Unix()/60)

	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}
	return count.Val() <= int64(l.perMinute)
}

func (l *RateLimiter) Close() error {
	return l.client.Close()
}
