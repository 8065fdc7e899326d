package redis_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/internal/redis"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(t.Context(), &config.Redis{URL: "redis://" + mr.Addr() + "/0"}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	ctx := t.Context()
	require.NoError(t, client.Do(ctx, client.B().Set().Key("k").Value("v").Build()).Error())

	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClientMissingURL(t *testing.T) {
	t.Parallel()

	_, err := redis.NewClient(t.Context(), &config.Redis{}, zap.NewNop())
	require.ErrorIs(t, err, redis.ErrMissingURL)
}

func TestNewClientBadURL(t *testing.T) {
	t.Parallel()

	_, err := redis.NewClient(t.Context(), &config.Redis{URL: "http://not-redis"}, zap.NewNop())
	require.Error(t, err)
}
