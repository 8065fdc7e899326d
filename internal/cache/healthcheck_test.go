package cache_test

import (
	"testing"

	"github.com/redis/rueidis/mock"
	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/internal/cache"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestHealthCheckValueMismatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)

	ctx := t.Context()
	gomock.InOrder(
		client.EXPECT().Do(ctx, mock.Match("SET", "test", "1")).Return(mock.Result(mock.RedisString("OK"))),
		client.EXPECT().Do(ctx, mock.Match("GET", "test")).Return(mock.Result(mock.RedisString("2"))),
	)

	err := cache.New(client, zap.NewNop()).HealthCheck(ctx)
	require.ErrorIs(t, err, cache.ErrCacheIntegrity)
}

func TestHealthCheckMissingValue(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)

	ctx := t.Context()
	gomock.InOrder(
		client.EXPECT().Do(ctx, mock.Match("SET", "test", "1")).Return(mock.Result(mock.RedisString("OK"))),
		client.EXPECT().Do(ctx, mock.Match("GET", "test")).Return(mock.Result(mock.RedisNil())),
	)

	err := cache.New(client, zap.NewNop()).HealthCheck(ctx)
	require.ErrorIs(t, err, cache.ErrCacheIntegrity)
}
