package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/tupperbox/tupperbox/internal/database/types"
	"github.com/uptrace/bun"
)

var (
	// ErrNameTaken is returned when a user already owns a record with the same name.
	ErrNameTaken = errors.New("name already in use")
	// ErrNoRowsAffected is returned when an update targets a record that does not exist.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrUnknownField is returned when an update names a column that cannot be changed.
	ErrUnknownField = errors.New("unknown or immutable field")
)

// nameRow is the projection used for name conflict checks.
type nameRow struct {
	Name string `bun:"name"`
}

// nameTaken reports whether userID already owns a row in table whose name
// matches name ignoring case. Rows named like except are skipped so a record
// can be renamed to a different casing of its own name.
func nameTaken(ctx context.Context, db bun.IDB, table, userID, name, except string) (bool, error) {
	var rows []nameRow

	err := db.NewSelect().
		Table(table).
		Column("name").
		Where("user_id = ?", userID).
		Scan(ctx, &rows)
	if err != nil {
		return false, fmt.Errorf("failed to check %s names: %w", table, err)
	}

	for _, row := range rows {
		if except != "" && types.SameName(row.Name, except) {
			continue
		}

		if types.SameName(row.Name, name) {
			return true, nil
		}
	}

	return false, nil
}
