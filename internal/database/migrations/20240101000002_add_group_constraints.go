package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

var groupConstraints = []struct { //nolint:gochecknoglobals // -
	table string
	name  string
	ddl   string
}{
	{
		"groups", "groups_user_id_name_key",
		"ALTER TABLE groups ADD CONSTRAINT groups_user_id_name_key UNIQUE (user_id, name)",
	},
	{
		"members", "members_group_id_fkey",
		"ALTER TABLE members ADD CONSTRAINT members_group_id_fkey FOREIGN KEY (group_id) REFERENCES groups(id)",
	},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, c := range groupConstraints {
			if err := addConstraint(ctx, db, c.table, c.name, c.ddl); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for i := len(groupConstraints) - 1; i >= 0; i-- {
			c := groupConstraints[i]

			_, err := db.NewRaw("ALTER TABLE ? DROP CONSTRAINT IF EXISTS ?",
				bun.Ident(c.table), bun.Ident(c.name)).Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop constraint %s: %w", c.name, err)
			}
		}

		return nil
	})
}
