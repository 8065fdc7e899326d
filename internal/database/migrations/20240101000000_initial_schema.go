package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Table layouts match the deployments created before versioned migrations,
// so every statement must be a no-op against such a database.
var initialTables = []struct { //nolint:gochecknoglobals // -
	name string
	ddl  string
}{
	{"webhooks", `
		CREATE TABLE IF NOT EXISTS webhooks(
			id VARCHAR(32) PRIMARY KEY,
			channel_id VARCHAR(32) NOT NULL,
			token VARCHAR(100) NOT NULL
		)`},
	{"servers", `
		CREATE TABLE IF NOT EXISTS servers(
			id VARCHAR(32) PRIMARY KEY,
			prefix TEXT NOT NULL,
			lang TEXT NOT NULL,
			lang_plural TEXT,
			log_channel VARCHAR(32)
		)`},
	{"blacklist", `
		CREATE TABLE IF NOT EXISTS blacklist(
			id VARCHAR(32) NOT NULL,
			server_id VARCHAR(32) NOT NULL,
			is_channel BOOLEAN NOT NULL,
			block_proxies BOOLEAN NOT NULL,
			block_commands BOOLEAN NOT NULL,
			PRIMARY KEY (id, server_id)
		)`},
	{"groups", `
		CREATE TABLE IF NOT EXISTS groups(
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(32) NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			tag VARCHAR(32)
		)`},
	{"members", `
		CREATE TABLE IF NOT EXISTS members(
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(32) NOT NULL,
			name VARCHAR(80) NOT NULL,
			position INTEGER NOT NULL,
			avatar_url TEXT NOT NULL,
			brackets TEXT[] NOT NULL,
			posts INTEGER NOT NULL,
			show_brackets BOOLEAN NOT NULL,
			birthday DATE,
			description TEXT,
			tag VARCHAR(32),
			group_id INTEGER,
			UNIQUE (user_id, name)
		)`},
	{"global_blacklist", `
		CREATE TABLE IF NOT EXISTS global_blacklist(
			user_id VARCHAR(50) PRIMARY KEY
		)`},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, table := range initialTables {
			if _, err := db.NewRaw(table.ddl).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Drop in reverse order so members goes before groups
		for i := len(initialTables) - 1; i >= 0; i-- {
			name := initialTables[i].name
			if _, err := db.NewRaw("DROP TABLE IF EXISTS ?", bun.Ident(name)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", name, err)
			}
		}

		return nil
	})
}
