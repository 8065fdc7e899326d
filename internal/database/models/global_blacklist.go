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

// GlobalBlacklistModel handles database operations for users banned from the bot.
type GlobalBlacklistModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewGlobalBlacklist creates a new GlobalBlacklistModel instance.
func NewGlobalBlacklist(db *bun.DB, logger *zap.Logger) *GlobalBlacklistModel {
	return &GlobalBlacklistModel{
		db:     db,
		logger: logger.Named("db_global_blacklist"),
	}
}

// Get returns the row for userID, or nil if the user is not blacklisted.
func (m *GlobalBlacklistModel) Get(ctx context.Context, userID string) (*types.GlobalBlacklist, error) {
	var row types.GlobalBlacklist

	err := m.db.NewSelect().
		Model(&row).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get global blacklist: %w", err)
	}

	return &row, nil
}

// Add blacklists userID. Adding an existing user is a no-op.
func (m *GlobalBlacklistModel) Add(ctx context.Context, userID string) error {
	_, err := m.db.NewInsert().
		Model(&types.GlobalBlacklist{UserID: userID}).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add global blacklist: %w", err)
	}

	m.logger.Info("User added to global blacklist", zap.String("userID", userID))

	return nil
}

// Remove lifts the blacklist on userID.
func (m *GlobalBlacklistModel) Remove(ctx context.Context, userID string) error {
	_, err := m.db.NewDelete().
		Model((*types.GlobalBlacklist)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove global blacklist: %w", err)
	}

	m.logger.Info("User removed from global blacklist", zap.String("userID", userID))

	return nil
}
