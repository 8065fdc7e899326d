package commands

import (
	"context"

	"github.com/tupperbox/tupperbox/internal/cache"
	"github.com/tupperbox/tupperbox/internal/redis"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// CheckCommands returns the startup check and global blacklist commands.
func CheckCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "check",
			Usage: "Run the startup checks the bot performs before serving",
			Description: `Connects to Postgres, applies pending migrations, checks the
legacy import files and round-trips a value through Redis.

Exits non-zero on the first failed step.`,
			Action: handleCheck(deps),
		},
		{
			Name:  "global-blacklist",
			Usage: "Manage users banned from the bot everywhere",
			Commands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Ban a user globally",
					ArgsUsage: "USER_ID",
					Action:    handleGlobalBlacklistAdd(deps),
				},
				{
					Name:      "remove",
					Usage:     "Lift a global ban",
					ArgsUsage: "USER_ID",
					Action:    handleGlobalBlacklistRemove(deps),
				},
				{
					Name:      "get",
					Usage:     "Show whether a user is banned globally",
					ArgsUsage: "USER_ID",
					Action:    handleGlobalBlacklistGet(deps),
				},
			},
		},
	}
}

// handleCheck handles the 'check' command.
func handleCheck(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		client, err := redis.NewClient(ctx, deps.Redis, deps.Logger)
		if err != nil {
			return err
		}
		defer client.Close()

		return deps.DB.Init(ctx, cache.New(client, deps.Logger), deps.ImportFiles)
	}
}

// handleGlobalBlacklistAdd handles the 'global-blacklist add' command.
func handleGlobalBlacklistAdd(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrUserIDRequired
		}

		return deps.DB.Model().GlobalBlacklist().Add(ctx, c.Args().First())
	}
}

// handleGlobalBlacklistRemove handles the 'global-blacklist remove' command.
func handleGlobalBlacklistRemove(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrUserIDRequired
		}

		return deps.DB.Model().GlobalBlacklist().Remove(ctx, c.Args().First())
	}
}

// handleGlobalBlacklistGet handles the 'global-blacklist get' command.
func handleGlobalBlacklistGet(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrUserIDRequired
		}

		userID := c.Args().First()

		entry, err := deps.DB.GlobalBlacklisted(ctx, userID)
		if err != nil {
			return err
		}

		deps.Logger.Info("Global blacklist lookup",
			zap.String("userID", userID),
			zap.Bool("blacklisted", entry != nil))

		return nil
	}
}
