package database

import (
	"github.com/tupperbox/tupperbox/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	member          *models.MemberModel
	group           *models.GroupModel
	server          *models.ServerModel
	blacklist       *models.BlacklistModel
	webhook         *models.WebhookModel
	globalBlacklist *models.GlobalBlacklistModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		member:          models.NewMember(db, logger),
		group:           models.NewGroup(db, logger),
		server:          models.NewServer(db, logger),
		blacklist:       models.NewBlacklist(db, logger),
		webhook:         models.NewWebhook(db, logger),
		globalBlacklist: models.NewGlobalBlacklist(db, logger),
	}
}

// Member returns the member model repository.
func (r *Repository) Member() *models.MemberModel {
	return r.member
}

// Group returns the group model repository.
func (r *Repository) Group() *models.GroupModel {
	return r.group
}

// Server returns the server config model repository.
func (r *Repository) Server() *models.ServerModel {
	return r.server
}

// Blacklist returns the per-server blacklist model repository.
func (r *Repository) Blacklist() *models.BlacklistModel {
	return r.blacklist
}

// Webhook returns the webhook model repository.
func (r *Repository) Webhook() *models.WebhookModel {
	return r.webhook
}

// GlobalBlacklist returns the global blacklist model repository.
func (r *Repository) GlobalBlacklist() *models.GlobalBlacklistModel {
	return r.globalBlacklist
}
