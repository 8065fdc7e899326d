package database_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/internal/database"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHookLogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		event   *bun.QueryEvent
		level   zapcore.Level
		message string
	}{
		{
			name:    "failed query",
			event:   &bun.QueryEvent{Query: "SELECT 1", StartTime: time.Now(), Err: errors.New("boom")},
			level:   zapcore.ErrorLevel,
			message: "Query failed",
		},
		{
			name:    "no rows",
			event:   &bun.QueryEvent{Query: "SELECT * FROM global_blacklist", StartTime: time.Now(), Err: sql.ErrNoRows},
			level:   zapcore.DebugLevel,
			message: "Query returned no rows",
		},
		{
			name: "wrapped no rows",
			event: &bun.QueryEvent{
				Query:     "SELECT * FROM members",
				StartTime: time.Now(),
				Err:       fmt.Errorf("scan: %w", sql.ErrNoRows),
			},
			level:   zapcore.DebugLevel,
			message: "Query returned no rows",
		},
		{
			name:    "slow query",
			event:   &bun.QueryEvent{Query: "SELECT pg_sleep(1)", StartTime: time.Now().Add(-time.Second)},
			level:   zapcore.WarnLevel,
			message: "Slow query",
		},
		{
			name:    "fast query",
			event:   &bun.QueryEvent{Query: "SELECT 1", StartTime: time.Now()},
			level:   zapcore.DebugLevel,
			message: "Query executed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			hook := database.NewHook(zap.New(core), 500*time.Millisecond)

			ctx := hook.BeforeQuery(t.Context(), tt.event)
			hook.AfterQuery(ctx, tt.event)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, tt.message, entries[0].Message)
			assert.Equal(t, tt.event.Query, entries[0].ContextMap()["query"])
		})
	}
}
