package commands

import (
	"context"

	"github.com/tupperbox/tupperbox/internal/database"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// MigrationCommands returns the schema management commands.
func MigrationCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Create the migration bookkeeping tables",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return deps.DB.InitMigrations(ctx)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply pending migrations",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return deps.DB.Migrate(ctx)
			},
		},
		{
			Name:  "rollback",
			Usage: "Revert the last migration group",
			Description: `Reverts the most recently applied migration group.

Reverting the initial schema drops the members, groups, servers, blacklist,
webhooks and global_blacklist tables with all their rows, including tables
that existed before versioned migrations were introduced. That case is
refused unless --drop-tables is given.`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "drop-tables",
					Usage: "Allow reverting the initial schema",
				},
			},
			Action: handleRollback(deps),
		},
		{
			Name:   "status",
			Usage:  "List migrations and whether they are applied",
			Action: handleStatus(deps),
		},
		{
			Name:      "create",
			Usage:     "Create a new Go migration file",
			ArgsUsage: "NAME",
			Action:    handleCreate(deps),
		},
	}
}

// handleRollback handles the 'rollback' command.
func handleRollback(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		ms, err := deps.DB.MigrationStatus(ctx)
		if err != nil {
			return err
		}

		if dropsInitialSchema(ms.LastGroup()) && !c.Bool("drop-tables") {
			return ErrSchemaRollback
		}

		_, err = deps.DB.Rollback(ctx)

		return err
	}
}

// dropsInitialSchema reports whether reverting group would revert the
// migration that creates the base tables.
func dropsInitialSchema(group *migrate.MigrationGroup) bool {
	for _, m := range group.Migrations {
		if m.Name == database.InitialSchemaMigration {
			return true
		}
	}

	return false
}

// handleStatus handles the 'status' command.
func handleStatus(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		ms, err := deps.DB.MigrationStatus(ctx)
		if err != nil {
			return err
		}

		for _, m := range ms {
			deps.Logger.Info("Migration",
				zap.String("name", m.String()),
				zap.Bool("applied", m.IsApplied()),
				zap.Int64("group", m.GroupID))
		}

		deps.Logger.Info("Migration status",
			zap.Int("total", len(ms)),
			zap.Int("pending", len(ms.Unapplied())),
			zap.String("last_group", ms.LastGroup().String()))

		return nil
	}
}

// handleCreate handles the 'create' command.
func handleCreate(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrNameRequired
		}

		mf, err := deps.DB.NewMigrator().CreateGoMigration(ctx, c.Args().First())
		if err != nil {
			return err
		}

		deps.Logger.Info("Created Go migration",
			zap.String("name", mf.Name),
			zap.String("path", mf.Path))

		return nil
	}
}
