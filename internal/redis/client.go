package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/rueidis"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"go.uber.org/zap"
)

// ErrMissingURL is returned when no connection URL is configured.
var ErrMissingURL = errors.New("redis url is empty")

// ClientName identifies this process in CLIENT LIST.
const ClientName = "tupperbox"

// NewClient opens the single long-lived Redis client shared by the process.
// rueidis pipelines concurrent commands over this one connection.
func NewClient(ctx context.Context, cfg *config.Redis, logger *zap.Logger) (rueidis.Client, error) {
	logger = logger.Named("redis")

	if cfg.URL == "" {
		return nil, ErrMissingURL
	}

	opt, err := rueidis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.ClientName = ClientName
	// Values are read straight from the server; no client-side tracking.
	opt.DisableCache = true

	client, err := rueidis.NewClient(opt)
	if err != nil {
		logger.Error("Redis connection error", zap.Error(err))
		return nil, fmt.Errorf("failed to create Redis client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		logger.Error("Redis connection error", zap.Error(err))

		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.Strings("addresses", opt.InitAddress),
		zap.Int("db", opt.SelectDB))

	return client, nil
}
