package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Indexes are built concurrently so startup never locks a live table.
// CONCURRENTLY cannot share a statement batch, hence one Exec per index.
var initialIndexes = []struct { //nolint:gochecknoglobals // -
	name string
	ddl  string
}{
	{"members_lower_idx", "CREATE INDEX CONCURRENTLY IF NOT EXISTS members_lower_idx ON members(lower(name))"},
	{"webhooks_channelidx", "CREATE INDEX CONCURRENTLY IF NOT EXISTS webhooks_channelidx ON webhooks(channel_id)"},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, idx := range initialIndexes {
			if _, err := db.NewRaw(idx.ddl).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, idx := range initialIndexes {
			_, err := db.NewRaw("DROP INDEX CONCURRENTLY IF EXISTS ?", bun.Ident(idx.name)).Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop index %s: %w", idx.name, err)
			}
		}

		return nil
	})
}
