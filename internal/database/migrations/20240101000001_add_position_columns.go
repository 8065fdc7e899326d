package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			ALTER TABLE groups ADD COLUMN IF NOT EXISTS position INTEGER;
			ALTER TABLE members ADD COLUMN IF NOT EXISTS group_pos INTEGER;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add position columns: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			ALTER TABLE members DROP COLUMN IF EXISTS group_pos;
			ALTER TABLE groups DROP COLUMN IF EXISTS position;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop position columns: %w", err)
		}

		return nil
	})
}
