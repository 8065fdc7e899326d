package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/tupperbox/tupperbox/internal/database/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

const (
	// MigrationLockKey is the pg_advisory_lock key held while the schema changes.
	MigrationLockKey int64 = 0x7475707065720001
	// unlockTimeout bounds the release of the migration lock after a cancelled run.
	unlockTimeout = 10 * time.Second
	// InitialSchemaMigration creates the base tables; rolling it back drops them.
	InitialSchemaMigration = "20240101000000"
)

// migrationLocker serializes schema changes across processes.
type migrationLocker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// advisoryLock holds a session-level Postgres advisory lock on one pooled
// connection. Postgres drops the lock when that session ends, so a killed
// process cannot leave it behind.
type advisoryLock struct {
	db   *bun.DB
	key  int64
	conn *bun.Conn
}

func (l *advisoryLock) Lock(ctx context.Context) error {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock(?)", l.key); err != nil {
		_ = conn.Close()
		return err
	}

	l.conn = &conn

	return nil
}

func (l *advisoryLock) Unlock(ctx context.Context) error {
	if l.conn == nil {
		return nil
	}

	conn := l.conn
	l.conn = nil

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_unlock(?)", l.key); err != nil {
		// The lock lives as long as the session, so the session is discarded
		// instead of going back to the pool still holding it.
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		_ = conn.Close()

		return err
	}

	return conn.Close()
}

// withMigrationLock runs fn while holding locker. The lock is released on a
// context detached from ctx, so a start cancelled by a signal still unlocks.
func withMigrationLock(
	ctx context.Context, locker migrationLocker, logger *zap.Logger, fn func(ctx context.Context) error,
) error {
	if err := locker.Lock(ctx); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
		defer cancel()

		if err := locker.Unlock(unlockCtx); err != nil {
			logger.Error("Failed to release migration lock", zap.Error(err))
		}
	}()

	return fn(ctx)
}

// NewMigrator returns a migrator over this connection. Migrations are only
// marked as applied once they succeed, so a failed step is retried next start.
func (c *Client) NewMigrator() *migrate.Migrator {
	return migrate.NewMigrator(c.db, migrations.Migrations, migrate.WithMarkAppliedOnSuccess(true))
}

// newMigrationLock returns the advisory lock guarding schema changes.
func (c *Client) newMigrationLock() *advisoryLock {
	return &advisoryLock{db: c.db, key: MigrationLockKey}
}

// InitMigrations creates the bun migration bookkeeping tables.
func (c *Client) InitMigrations(ctx context.Context) error {
	if err := c.NewMigrator().Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	return nil
}

// Migrate applies every pending migration while holding the migration lock.
func (c *Client) Migrate(ctx context.Context) error {
	migrator := c.NewMigrator()

	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	return withMigrationLock(ctx, c.newMigrationLock(), c.logger, func(ctx context.Context) error {
		group, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		if group.IsZero() {
			c.logger.Info("No new migrations to run (database is up to date)")
		} else {
			c.logger.Info("Applied migrations", zap.String("group", group.String()))
		}

		return nil
	})
}

// Rollback reverts the last applied migration group while holding the
// migration lock. Reverting the initial schema drops every table, including
// ones adopted from a deployment that predates versioned migrations.
func (c *Client) Rollback(ctx context.Context) (*migrate.MigrationGroup, error) {
	migrator := c.NewMigrator()

	var group *migrate.MigrationGroup

	err := withMigrationLock(ctx, c.newMigrationLock(), c.logger, func(ctx context.Context) error {
		var err error

		group, err = migrator.Rollback(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if group.IsZero() {
		c.logger.Info("No groups to roll back")
		return group, nil
	}

	for _, m := range group.Migrations {
		if m.Name == InitialSchemaMigration {
			c.logger.Warn("Initial schema rolled back; all tables and their rows were dropped",
				zap.String("migration", m.String()))
		}
	}

	c.logger.Info("Rolled back migrations", zap.String("group", group.String()))

	return group, nil
}

// MigrationStatus lists every known migration with its applied state.
func (c *Client) MigrationStatus(ctx context.Context) (migrate.MigrationSlice, error) {
	ms, err := c.NewMigrator().MigrationsWithStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	return ms, nil
}
