package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCooldown      = errors.New("please wait before requesting another code")
	ErrQuotaExceeded = errors.New("too many code requests; try again later")
)

// Limiter throttles code requests. Release gives back a request that did not lead to a delivered code.
type Limiter interface {
	Allow(ctx context.Context, key string) error
	Release(ctx context.Context, key string) error
}

// RedisLimiter enforces a cooldown between requests and a quota per window for each key.
type RedisLimiter struct {
	client   redis.UniversalClient
	prefix   string
	cooldown time.Duration
	window   time.Duration
	max      int
}

func NewRedisLimiter(client redis.UniversalClient, cooldown, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		prefix:   "code_request",
		cooldown: cooldown,
		window:   window,
		max:      max,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	key = normalizeKey(key)
	countKey := l.countKey(key)

	if l.cooldown > 0 {
		lastKey := l.lastKey(key)
		ok, err := l.client.SetNX(ctx, lastKey, "1", l.cooldown).Result()
		if err != nil {
			return err
		}
		if !ok {
			ttl, _ := l.client.TTL(ctx, lastKey).Result()
			return fmt.Errorf("%w (%d seconds)", ErrCooldown, int(ttl.Seconds()))
		}
	}

	if l.max <= 0 || l.window <= 0 {
		return nil
	}

	cnt, err := l.client.Incr(ctx, countKey).Result()
	if err != nil {
		return err
	}
	if cnt == 1 {
		_ = l.client.Expire(ctx, countKey, l.window).Err()
	}
	if cnt > int64(l.max) {
		return ErrQuotaExceeded
	}

	return nil
}

// Release clears the cooldown and takes the request back out of the window quota.
func (l *RedisLimiter) Release(ctx context.Context, key string) error {
	key = normalizeKey(key)

	if err := l.client.Del(ctx, l.lastKey(key)).Err(); err != nil {
		return err
	}
	if l.max <= 0 || l.window <= 0 {
		return nil
	}

	cnt, err := l.client.Decr(ctx, l.countKey(key)).Result()
	if err != nil {
		return err
	}
	if cnt <= 0 {
		return l.client.Del(ctx, l.countKey(key)).Err()
	}
	return nil
}

func (l *RedisLimiter) lastKey(key string) string {
	return fmt.Sprintf("%s:last:%s", l.prefix, key)
}

func (l *RedisLimiter) countKey(key string) string {
	return fmt.Sprintf("%s:count:%s", l.prefix, key)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// IsLimited reports whether err is a rejection rather than a backend failure.
func IsLimited(err error) bool {
	return errors.Is(err, ErrCooldown) || errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrAttemptsExceeded)
}

type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) error {
	return nil
}

func (NoopLimiter) Release(context.Context, string) error {
	return nil
}
