package cache

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// ConfigKeyPrefix namespaces guild configuration blobs.
// Keys are formatted as "config/{guildID}".
const ConfigKeyPrefix = "config/"

// GuildConfig is the cached view of a guild's server row.
// Nil fields are left out of the stored JSON.
type GuildConfig struct {
	Prefix     *string `json:"prefix,omitempty"`
	Lang       *string `json:"lang,omitempty"`
	LangPlural *string `json:"lang_plural,omitempty"`
	LogChannel *string `json:"log_channel,omitempty"`
}

// Config stores per-guild configuration blobs as JSON strings.
type Config struct {
	client rueidis.Client
	logger *zap.Logger
}

// Get returns the cached configuration for guildID, or nil if none is cached.
func (c *Config) Get(ctx context.Context, guildID string) (*GuildConfig, error) {
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(ConfigKeyPrefix+guildID).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get config for guild %s: %w", guildID, err)
	}

	if raw == "" {
		return nil, nil
	}

	var cfg GuildConfig
	if err := sonic.UnmarshalString(raw, &cfg); err != nil {
		c.logger.Warn("Invalid config value in Redis",
			zap.String("guildID", guildID),
			zap.String("value", raw),
			zap.Error(err))

		return nil, fmt.Errorf("invalid config value for guild %s: %w", guildID, err)
	}

	return &cfg, nil
}

// Set stores cfg for guildID, replacing any existing entry.
func (c *Config) Set(ctx context.Context, guildID string, cfg *GuildConfig) error {
	data, err := sonic.MarshalString(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config for guild %s: %w", guildID, err)
	}

	if err := c.client.Do(ctx, c.client.B().Set().Key(ConfigKeyPrefix+guildID).Value(data).Build()).Error(); err != nil {
		return fmt.Errorf("failed to set config for guild %s: %w", guildID, err)
	}

	return nil
}

// Delete removes the cached configuration for guildID.
func (c *Config) Delete(ctx context.Context, guildID string) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(ConfigKeyPrefix+guildID).Build()).Error(); err != nil {
		return fmt.Errorf("failed to delete config for guild %s: %w", guildID, err)
	}

	return nil
}
