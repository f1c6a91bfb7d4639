package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/fazendaapp/fazenda-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Redis persists collection snapshots as Redis string values.
type Redis struct {
	raw *redis.Client
}

// NewRedis bootstraps a Redis-backed store with pooling/timeouts and verifies
// connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Get returns the value stored under key or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.raw.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Put stores value under key with no expiry; snapshots live until replaced.
func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	return r.raw.Set(ctx, key, value, 0).Err()
}

// Delete removes the value stored under key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.raw.Del(ctx, key).Err()
}

// Ping verifies the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.raw.Ping(ctx).Err()
}

// Close shuts down the underlying client.
func (r *Redis) Close() error {
	return r.raw.Close()
}
