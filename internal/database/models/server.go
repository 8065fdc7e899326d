package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tupperbox/tupperbox/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ServerModel handles database operations for per-guild settings.
type ServerModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewServer creates a new ServerModel instance.
func NewServer(db *bun.DB, logger *zap.Logger) *ServerModel {
	return &ServerModel{
		db:     db,
		logger: logger.Named("db_server"),
	}
}

// Get returns the settings of a guild, or nil if it has none stored.
func (m *ServerModel) Get(ctx context.Context, guildID string) (*types.Server, error) {
	var server types.Server

	err := m.db.NewSelect().
		Model(&server).
		Where("id = ?", guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get server config: %w", err)
	}

	return &server, nil
}

// Upsert creates or replaces the settings of a guild.
func (m *ServerModel) Upsert(ctx context.Context, server *types.Server) error {
	_, err := m.db.NewInsert().
		Model(server).
		On("CONFLICT (id) DO UPDATE").
		Set("prefix = EXCLUDED.prefix").
		Set("lang = EXCLUDED.lang").
		Set("lang_plural = EXCLUDED.lang_plural").
		Set("log_channel = EXCLUDED.log_channel").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert server config: %w", err)
	}

	return nil
}

// serverFields lists the columns UpdateField may change.
var serverFields = map[string]struct{}{ //nolint:gochecknoglobals // -
	"prefix":      {},
	"lang":        {},
	"lang_plural": {},
	"log_channel": {},
}

// UpdateField sets a single settings column of an existing guild.
// A nil value clears nullable columns.
func (m *ServerModel) UpdateField(ctx context.Context, guildID, field string, value *string) error {
	if _, ok := serverFields[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	result, err := m.db.NewUpdate().
		Model((*types.Server)(nil)).
		Set("? = ?", bun.Ident(field), value).
		Where("id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update server %s: %w", field, err)
	}

	return requireAffected(result, "server "+guildID)
}

// Delete removes the settings of a guild.
func (m *ServerModel) Delete(ctx context.Context, guildID string) error {
	_, err := m.db.NewDelete().
		Model((*types.Server)(nil)).
		Where("id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete server config: %w", err)
	}

	return nil
}
