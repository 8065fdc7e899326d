package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/cmd/db/commands"
	"github.com/tupperbox/tupperbox/internal/database"
	"github.com/tupperbox/tupperbox/internal/redis"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// newApp builds the db tool over a Postgres that refuses connections and no
// Redis URL at all.
func newApp(t *testing.T) *cli.Command {
	t.Helper()

	db := database.NewConnection(&config.PostgreSQL{
		Host:         "127.0.0.1",
		Port:         1,
		User:         "tupperbox",
		DBName:       "tupperbox",
		SSLMode:      config.SSLModeDisable,
		MaxOpenConns: 1,
	}, zap.NewNop())
	t.Cleanup(func() { _ = db.Close() })

	deps := &commands.CLIDependencies{
		DB:     db,
		Redis:  &config.Redis{},
		Logger: zap.NewNop(),
	}

	return &cli.Command{
		Name:     "db",
		Commands: append(commands.MigrationCommands(deps), commands.CheckCommands(deps)...),
	}
}

func TestMigrateDoesNotNeedRedis(t *testing.T) {
	t.Parallel()

	err := newApp(t).Run(t.Context(), []string{"db", "migrate"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, redis.ErrMissingURL)
}

func TestCheckOpensRedis(t *testing.T) {
	t.Parallel()

	err := newApp(t).Run(t.Context(), []string{"db", "check"})
	require.ErrorIs(t, err, redis.ErrMissingURL)
}

func TestGlobalBlacklistRequiresUserID(t *testing.T) {
	t.Parallel()

	err := newApp(t).Run(t.Context(), []string{"db", "global-blacklist", "add"})
	require.ErrorIs(t, err, commands.ErrUserIDRequired)
}
