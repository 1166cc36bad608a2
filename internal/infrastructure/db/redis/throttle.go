package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// throttleWindow is the fixed window over which failures accumulate.
	throttleWindow = 15 * time.Minute
	// maxFailures is the number of failed logins tolerated per window.
	maxFailures = 5
)

// LoginThrottle counts failed login attempts per account in Redis.
// Key format: login_failures:<lowercased email>
type LoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// Allowed reports whether another login attempt may proceed for key.
func (t *LoginThrottle) Allowed(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < maxFailures, nil
}

// RecordFailure bumps the failure counter; the first failure in a window
// starts the expiry clock.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	n, err := t.client.Incr(ctx, t.key(key)).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, t.key(key), throttleWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Clear resets the counter after a successful login.
func (t *LoginThrottle) Clear(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *LoginThrottle) key(k string) string {
	return "login_failures:" + k
}
