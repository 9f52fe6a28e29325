package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrAttemptsExceeded = errors.New("too many failed verification attempts")

// AttemptCounter tracks failed code checks per key.
type AttemptCounter interface {
	Check(ctx context.Context, key string) error
	Fail(ctx context.Context, key string) (locked bool, err error)
	Reset(ctx context.Context, key string) error
}

// RedisAttemptCounter locks a key once max failures accumulate within ttl.
type RedisAttemptCounter struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	max    int
}

func NewRedisAttemptCounter(client redis.UniversalClient, ttl time.Duration, max int) *RedisAttemptCounter {
	return &RedisAttemptCounter{
		client: client,
		prefix: "code_verify",
		ttl:    ttl,
		max:    max,
	}
}

func (c *RedisAttemptCounter) Check(ctx context.Context, key string) error {
	cnt, err := c.client.Get(ctx, c.failKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if cnt >= c.max {
		return ErrAttemptsExceeded
	}
	return nil
}

func (c *RedisAttemptCounter) Fail(ctx context.Context, key string) (bool, error) {
	failKey := c.failKey(key)

	cnt, err := c.client.Incr(ctx, failKey).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		_ = c.client.Expire(ctx, failKey, c.ttl).Err()
	}
	return cnt >= int64(c.max), nil
}

func (c *RedisAttemptCounter) Reset(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.failKey(key)).Err()
}

func (c *RedisAttemptCounter) failKey(key string) string {
	return fmt.Sprintf("%s:fail:%s", c.prefix, normalizeKey(key))
}

type NoopAttemptCounter struct{}

func (NoopAttemptCounter) Check(context.Context, string) error {
	return nil
}

func (NoopAttemptCounter) Fail(context.Context, string) (bool, error) {
	return false, nil
}

func (NoopAttemptCounter) Reset(context.Context, string) error {
	return nil
}
