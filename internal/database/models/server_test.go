package models_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/internal/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap/zaptest"
)

func TestServerUpdateFieldRejectsUnknownColumn(t *testing.T) {
	t.Parallel()

	// Never dialed: the column check runs before any query.
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithAddr("127.0.0.1:1")))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	servers := models.NewServer(db, zaptest.NewLogger(t))

	for _, field := range []string{"id", "prefix; DROP TABLE servers", ""} {
		value := "x"
		err := servers.UpdateField(t.Context(), "guild", field, &value)
		require.ErrorIs(t, err, models.ErrUnknownField, field)
	}
}
