package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations holds all database migrations.
var Migrations = migrate.NewMigrations() //nolint:gochecknoglobals // -

// constraintExists reports whether table already carries a constraint named name.
func constraintExists(ctx context.Context, db *bun.DB, table, name string) (bool, error) {
	var exists bool

	err := db.NewRaw(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_schema = current_schema()
			AND table_name = ?
			AND constraint_name = ?
		)`, table, name).Scan(ctx, &exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up constraint %s on %s: %w", name, table, err)
	}

	return exists, nil
}

// addConstraint runs ddl unless the constraint is already present.
// Postgres has no ADD CONSTRAINT IF NOT EXISTS, so the check happens here.
func addConstraint(ctx context.Context, db *bun.DB, table, name, ddl string) error {
	exists, err := constraintExists(ctx, db, table, name)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	if _, err := db.NewRaw(ddl).Exec(ctx); err != nil {
		return fmt.Errorf("failed to add constraint %s on %s: %w", name, table, err)
	}

	return nil
}
