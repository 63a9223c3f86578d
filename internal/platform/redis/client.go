// Package redis opens the optional Redis connection used by the document cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/config"
)

// Client is a connected go-redis client.
type Client struct {
	*redis.Client
}

// New connects and pings Redis. It returns a nil client when cfg.URL is empty.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

// options parses cfg.URL and overlays the pool and timeout settings that are set.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	overlay := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	overlay(&opts.PoolSize, cfg.PoolSize)
	overlay(&opts.MinIdleConns, cfg.MinIdleConns)
	for dst, v := range map[*time.Duration]time.Duration{
		&opts.DialTimeout:  cfg.DialTimeout,
		&opts.ReadTimeout:  cfg.ReadTimeout,
		&opts.WriteTimeout: cfg.WriteTimeout,
	} {
		if v > 0 {
			*dst = v
		}
	}
	return opts, nil
}

// Health pings the server; it backs the /healthz check.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
