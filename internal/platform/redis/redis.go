package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"secret-santa-backend/internal/common/config"
)

// Client is the connection shared by the lookup cache, the event publisher
// and the registration worker.
type Client struct {
	*redis.Client
}

// Options builds go-redis options from the REDIS_* settings.
func Options(cfg *config.Config) *redis.Options {
	r := cfg.Redis
	return &redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     r.Password,
		DB:           r.DB,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConns,
		DialTimeout:  r.DialTimeout,
		ReadTimeout:  r.ReadTimeout,
	}
}

// Open connects and pings, closing the client again when redis is unreachable.
func Open(ctx context.Context, opts *redis.Options) (*Client, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &Client{Client: c}, nil
}
