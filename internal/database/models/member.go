package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tupperbox/tupperbox/internal/database/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
)

// MemberModel handles database operations for proxied members.
type MemberModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMember creates a new MemberModel instance.
func NewMember(db *bun.DB, logger *zap.Logger) *MemberModel {
	return &MemberModel{
		db:     db,
		logger: logger.Named("db_member"),
	}
}

// Create inserts a member. A zero Position places it after the owner's last member.
// The generated ID and position are written back into member.
func (m *MemberModel) Create(ctx context.Context, member *types.Member) error {
	taken, err := nameTaken(ctx, m.db, "members", member.UserID, member.Name, "")
	if err != nil {
		return err
	}

	if taken {
		return fmt.Errorf("%w: member %q", ErrNameTaken, member.Name)
	}

	if member.Brackets == nil {
		member.Brackets = []string{}
	}

	query := m.db.NewInsert().Model(member).Returning("id, position")
	if member.Position == 0 {
		query = query.Value("position",
			"(SELECT COALESCE(MAX(position), 0) + 1 FROM members WHERE user_id = ?)", member.UserID)
	}

	if _, err := query.Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: member %q", ErrNameTaken, member.Name)
		}

		return fmt.Errorf("failed to create member: %w", err)
	}

	m.logger.Debug("Created member",
		zap.String("userID", member.UserID),
		zap.Int64("memberID", member.ID),
		zap.String("name", member.Name))

	return nil
}

// Get finds a member by owner and name, ignoring case.
// Returns nil if the member does not exist.
func (m *MemberModel) Get(ctx context.Context, userID, name string) (*types.Member, error) {
	var member types.Member

	err := m.db.NewSelect().
		Model(&member).
		Where("user_id = ?", userID).
		Where("lower(name) = lower(?)", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// List returns all members owned by userID in position order.
func (m *MemberModel) List(ctx context.Context, userID string) ([]*types.Member, error) {
	var members []*types.Member

	err := m.db.NewSelect().
		Model(&members).
		Where("user_id = ?", userID).
		Order("position ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

// Count returns the number of members owned by userID.
func (m *MemberModel) Count(ctx context.Context, userID string) (int, error) {
	count, err := m.db.NewSelect().
		Model((*types.Member)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

// Rename changes the name of a member. The new name may differ from the old
// one only in case.
func (m *MemberModel) Rename(ctx context.Context, userID, oldName, newName string) error {
	taken, err := nameTaken(ctx, m.db, "members", userID, newName, oldName)
	if err != nil {
		return err
	}

	if taken {
		return fmt.Errorf("%w: member %q", ErrNameTaken, newName)
	}

	result, err := m.db.NewUpdate().
		Model((*types.Member)(nil)).
		Set("name = ?", newName).
		Where("user_id = ?", userID).
		Where("lower(name) = lower(?)", oldName).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: member %q", ErrNameTaken, newName)
		}

		return fmt.Errorf("failed to rename member: %w", err)
	}

	return requireAffected(result, "member "+oldName)
}

// Update writes the given columns of member, matched by ID.
// All mutable columns are written when none are given.
func (m *MemberModel) Update(ctx context.Context, member *types.Member, columns ...string) error {
	if len(columns) == 0 {
		columns = []string{
			"avatar_url", "brackets", "show_brackets", "birthday", "description", "tag", "position",
		}
	}

	result, err := m.db.NewUpdate().
		Model(member).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("member %d", member.ID))
}

// IncrementPosts bumps the proxied message counter of a member.
func (m *MemberModel) IncrementPosts(ctx context.Context, memberID int64) error {
	_, err := m.db.NewUpdate().
		Model((*types.Member)(nil)).
		Set("posts = posts + 1").
		Where("id = ?", memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment posts: %w", err)
	}

	return nil
}

// Delete removes a member by owner and name.
// Returns true if a member was removed.
func (m *MemberModel) Delete(ctx context.Context, userID, name string) (bool, error) {
	result, err := m.db.NewDelete().
		Model((*types.Member)(nil)).
		Where("user_id = ?", userID).
		Where("lower(name) = lower(?)", name).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DeleteAll removes every member owned by userID and returns how many were removed.
func (m *MemberModel) DeleteAll(ctx context.Context, userID string) (int64, error) {
	result, err := m.db.NewDelete().
		Model((*types.Member)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete members: %w", err)
	}

	return result.RowsAffected()
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}

	return false
}

// requireAffected turns an update that matched nothing into ErrNoRowsAffected.
func requireAffected(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNoRowsAffected, what)
	}

	return nil
}
