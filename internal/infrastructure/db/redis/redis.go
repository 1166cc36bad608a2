package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultDialTimeout bounds the startup connectivity check. Redis only backs
// the login throttle here, but a misconfigured address should still fail fast.
const defaultDialTimeout = 5 * time.Second

// Config selects the Redis instance used for login-failure counting.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect builds a client and confirms the instance answers before returning.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
