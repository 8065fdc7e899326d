package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tupperbox/tupperbox/internal/database"
	"github.com/uptrace/bun/migrate"
)

func TestDropsInitialSchema(t *testing.T) {
	t.Parallel()

	initial := &migrate.MigrationGroup{Migrations: migrate.MigrationSlice{
		{Name: database.InitialSchemaMigration, Comment: "initial_schema"},
		{Name: "20240101000001", Comment: "add_position_columns"},
	}}
	later := &migrate.MigrationGroup{Migrations: migrate.MigrationSlice{
		{Name: "20240101000003", Comment: "initial_indexes"},
	}}

	assert.True(t, dropsInitialSchema(initial))
	assert.False(t, dropsInitialSchema(later))
	assert.False(t, dropsInitialSchema(&migrate.MigrationGroup{}))
}
