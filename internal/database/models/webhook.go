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

// WebhookModel handles database operations for channel webhooks.
type WebhookModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewWebhook creates a new WebhookModel instance.
func NewWebhook(db *bun.DB, logger *zap.Logger) *WebhookModel {
	return &WebhookModel{
		db:     db,
		logger: logger.Named("db_webhook"),
	}
}

// GetByChannel returns the webhook used in a channel, or nil if none is stored.
func (m *WebhookModel) GetByChannel(ctx context.Context, channelID string) (*types.Webhook, error) {
	var webhook types.Webhook

	err := m.db.NewSelect().
		Model(&webhook).
		Where("channel_id = ?", channelID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get webhook: %w", err)
	}

	return &webhook, nil
}

// Set stores a webhook, replacing the token if the ID already exists.
func (m *WebhookModel) Set(ctx context.Context, webhook *types.Webhook) error {
	_, err := m.db.NewInsert().
		Model(webhook).
		On("CONFLICT (id) DO UPDATE").
		Set("channel_id = EXCLUDED.channel_id").
		Set("token = EXCLUDED.token").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	return nil
}

// Delete removes every webhook stored for a channel.
func (m *WebhookModel) Delete(ctx context.Context, channelID string) error {
	_, err := m.db.NewDelete().
		Model((*types.Webhook)(nil)).
		Where("channel_id = ?", channelID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	return nil
}

// DeleteByID removes a single webhook, e.g. after Discord reports it as unknown.
func (m *WebhookModel) DeleteByID(ctx context.Context, webhookID string) error {
	_, err := m.db.NewDelete().
		Model((*types.Webhook)(nil)).
		Where("id = ?", webhookID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	return nil
}
