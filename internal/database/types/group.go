package types

import "github.com/uptrace/bun"

// Group is a named collection of a user's members.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID          int64   `bun:"id,pk,autoincrement"`
	UserID      string  `bun:"user_id,notnull"`
	Name        string  `bun:"name,notnull"`
	Description *string `bun:"description"`
	Tag         *string `bun:"tag"`
	Position    *int    `bun:"position"`
}
