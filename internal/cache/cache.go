// Package cache wraps the shared Redis client with the three keyspaces the bot
// uses: cooldown timers, per-guild configuration and the channel blacklist.
// The cache is never authoritative; every entry can be rebuilt from Postgres.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// ErrCacheIntegrity is returned when the health check reads back a different value.
var ErrCacheIntegrity = errors.New("cache integrity check failed")

const (
	// healthCheckKey is written, read back and removed by HealthCheck.
	healthCheckKey = "test"
	// healthCheckValue is the sentinel stored under healthCheckKey.
	healthCheckValue = "1"
)

// Cache groups the namespaced accessors over a single Redis client.
type Cache struct {
	client    rueidis.Client
	logger    *zap.Logger
	cooldowns *Cooldowns
	config    *Config
	blacklist *Blacklist
}

// New creates a Cache over an already connected client.
func New(client rueidis.Client, logger *zap.Logger) *Cache {
	logger = logger.Named("cache")

	return &Cache{
		client:    client,
		logger:    logger,
		cooldowns: &Cooldowns{client: client},
		config:    &Config{client: client, logger: logger},
		blacklist: &Blacklist{client: client},
	}
}

// Cooldowns returns the cooldown timer accessor.
func (c *Cache) Cooldowns() *Cooldowns {
	return c.cooldowns
}

// Config returns the guild configuration accessor.
func (c *Cache) Config() *Config {
	return c.config
}

// Blacklist returns the channel blacklist accessor.
func (c *Cache) Blacklist() *Blacklist {
	return c.blacklist
}

// Client returns the underlying Redis client.
func (c *Cache) Client() rueidis.Client {
	return c.client
}

// HealthCheck performs a write/read/delete round-trip on a sentinel key.
// A read that differs from the written value yields ErrCacheIntegrity.
func (c *Cache) HealthCheck(ctx context.Context) error {
	c.logger.Info("Checking Redis connection...")

	if err := c.client.Do(ctx, c.client.B().Set().Key(healthCheckKey).Value(healthCheckValue).Build()).Error(); err != nil {
		c.logger.Error("Redis error", zap.Error(err))
		return fmt.Errorf("failed to write health check key: %w", err)
	}

	val, err := c.client.Do(ctx, c.client.B().Get().Key(healthCheckKey).Build()).ToString()
	if err != nil && !rueidis.IsRedisNil(err) {
		c.logger.Error("Redis error", zap.Error(err))
		return fmt.Errorf("failed to read health check key: %w", err)
	}

	c.logger.Info("Redis test value", zap.String("value", val))

	if val != healthCheckValue {
		c.logger.Error("Redis error", zap.Error(ErrCacheIntegrity), zap.String("value", val))
		return fmt.Errorf("%w: wrote %q, read %q", ErrCacheIntegrity, healthCheckValue, val)
	}

	if err := c.client.Do(ctx, c.client.B().Del().Key(healthCheckKey).Build()).Error(); err != nil {
		c.logger.Error("Redis error", zap.Error(err))
		return fmt.Errorf("failed to delete health check key: %w", err)
	}

	c.logger.Info("Redis check passed!")

	return nil
}
