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

// BlacklistModel handles database operations for per-server blacklist entries.
type BlacklistModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewBlacklist creates a new BlacklistModel instance.
func NewBlacklist(db *bun.DB, logger *zap.Logger) *BlacklistModel {
	return &BlacklistModel{
		db:     db,
		logger: logger.Named("db_blacklist"),
	}
}

// Get returns the entry for a channel or user in a server, or nil if none exists.
func (m *BlacklistModel) Get(ctx context.Context, serverID, id string) (*types.BlacklistEntry, error) {
	var entry types.BlacklistEntry

	err := m.db.NewSelect().
		Model(&entry).
		Where("server_id = ?", serverID).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get blacklist entry: %w", err)
	}

	return &entry, nil
}

// List returns every entry of a server.
func (m *BlacklistModel) List(ctx context.Context, serverID string) ([]*types.BlacklistEntry, error) {
	var entries []*types.BlacklistEntry

	err := m.db.NewSelect().
		Model(&entries).
		Where("server_id = ?", serverID).
		Order("is_channel DESC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blacklist entries: %w", err)
	}

	return entries, nil
}

// Set creates or replaces an entry using a packed mode.
func (m *BlacklistModel) Set(
	ctx context.Context, serverID, id string, isChannel bool, mode types.BlacklistMode,
) (*types.BlacklistEntry, error) {
	entry := &types.BlacklistEntry{
		ID:            id,
		ServerID:      serverID,
		IsChannel:     isChannel,
		BlockProxies:  mode.BlocksProxies(),
		BlockCommands: mode.BlocksCommands(),
	}

	_, err := m.db.NewInsert().
		Model(entry).
		On("CONFLICT (id, server_id) DO UPDATE").
		Set("is_channel = EXCLUDED.is_channel").
		Set("block_proxies = EXCLUDED.block_proxies").
		Set("block_commands = EXCLUDED.block_commands").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to set blacklist entry: %w", err)
	}

	m.logger.Debug("Set blacklist entry",
		zap.String("serverID", serverID),
		zap.String("id", id),
		zap.Stringer("mode", mode))

	return entry, nil
}

// Delete removes an entry. Returns true if one was removed.
func (m *BlacklistModel) Delete(ctx context.Context, serverID, id string) (bool, error) {
	result, err := m.db.NewDelete().
		Model((*types.BlacklistEntry)(nil)).
		Where("server_id = ?", serverID).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete blacklist entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
