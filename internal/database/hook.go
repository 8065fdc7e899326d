package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// DefaultSlowQueryThreshold is the duration above which a query is logged at warn level.
const DefaultSlowQueryThreshold = 500 * time.Millisecond

// Hook implements bun.QueryHook interface for logging queries with zap.
type Hook struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

// NewHook creates a new Hook with zap logger.
func NewHook(logger *zap.Logger, slowThreshold time.Duration) *Hook {
	return &Hook{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

// BeforeQuery implements bun.QueryHook.
func (h *Hook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery logs the query and its execution time.
func (h *Hook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	switch {
	case errors.Is(event.Err, sql.ErrNoRows):
		// Absent rows are an ordinary lookup result
		h.logger.Debug("Query returned no rows",
			zap.String("query", event.Query),
			zap.Duration("duration", duration))
	case event.Err != nil:
		h.logger.Error("Query failed",
			zap.String("operation", event.Operation()),
			zap.String("query", event.Query),
			zap.Duration("duration", duration),
			zap.Error(event.Err))
	case h.slowThreshold > 0 && duration >= h.slowThreshold:
		h.logger.Warn("Slow query",
			zap.String("operation", event.Operation()),
			zap.String("query", event.Query),
			zap.Duration("duration", duration))
	default:
		h.logger.Debug("Query executed",
			zap.String("query", event.Query),
			zap.Duration("duration", duration))
	}
}
