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

// GroupModel handles database operations for member groups.
type GroupModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewGroup creates a new GroupModel instance.
func NewGroup(db *bun.DB, logger *zap.Logger) *GroupModel {
	return &GroupModel{
		db:     db,
		logger: logger.Named("db_group"),
	}
}

// Create inserts a group after the owner's last group.
// The generated ID and position are written back into group.
func (m *GroupModel) Create(ctx context.Context, group *types.Group) error {
	taken, err := nameTaken(ctx, m.db, "groups", group.UserID, group.Name, "")
	if err != nil {
		return err
	}

	if taken {
		return fmt.Errorf("%w: group %q", ErrNameTaken, group.Name)
	}

	_, err = m.db.NewInsert().
		Model(group).
		Value("position", "(SELECT COALESCE(MAX(position), 0) + 1 FROM groups WHERE user_id = ?)", group.UserID).
		Returning("id, position").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group %q", ErrNameTaken, group.Name)
		}

		return fmt.Errorf("failed to create group: %w", err)
	}

	m.logger.Debug("Created group",
		zap.String("userID", group.UserID),
		zap.Int64("groupID", group.ID),
		zap.String("name", group.Name))

	return nil
}

// Get finds a group by owner and name, ignoring case.
// Returns nil if the group does not exist.
func (m *GroupModel) Get(ctx context.Context, userID, name string) (*types.Group, error) {
	var group types.Group

	err := m.db.NewSelect().
		Model(&group).
		Where("user_id = ?", userID).
		Where("lower(name) = lower(?)", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &group, nil
}

// List returns all groups owned by userID in position order.
func (m *GroupModel) List(ctx context.Context, userID string) ([]*types.Group, error) {
	var groups []*types.Group

	err := m.db.NewSelect().
		Model(&groups).
		Where("user_id = ?", userID).
		OrderExpr("position ASC NULLS LAST, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return groups, nil
}

// Members returns the members of a group in group order.
func (m *GroupModel) Members(ctx context.Context, groupID int64) ([]*types.Member, error) {
	var members []*types.Member

	err := m.db.NewSelect().
		Model(&members).
		Where("group_id = ?", groupID).
		OrderExpr("group_pos ASC NULLS LAST, position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	return members, nil
}

// Rename changes the name of a group. The new name may differ from the old
// one only in case.
func (m *GroupModel) Rename(ctx context.Context, userID, oldName, newName string) error {
	taken, err := nameTaken(ctx, m.db, "groups", userID, newName, oldName)
	if err != nil {
		return err
	}

	if taken {
		return fmt.Errorf("%w: group %q", ErrNameTaken, newName)
	}

	result, err := m.db.NewUpdate().
		Model((*types.Group)(nil)).
		Set("name = ?", newName).
		Where("user_id = ?", userID).
		Where("lower(name) = lower(?)", oldName).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group %q", ErrNameTaken, newName)
		}

		return fmt.Errorf("failed to rename group: %w", err)
	}

	return requireAffected(result, "group "+oldName)
}

// Update writes the description, tag and position of group, matched by ID.
func (m *GroupModel) Update(ctx context.Context, group *types.Group) error {
	result, err := m.db.NewUpdate().
		Model(group).
		Column("description", "tag", "position").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("group %d", group.ID))
}

// AddMember places a member at the end of a group.
func (m *GroupModel) AddMember(ctx context.Context, groupID, memberID int64) error {
	result, err := m.db.NewUpdate().
		Model((*types.Member)(nil)).
		Set("group_id = ?", groupID).
		Set("group_pos = (SELECT COALESCE(MAX(group_pos), 0) + 1 FROM members WHERE group_id = ?)", groupID).
		Where("id = ?", memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add member to group: %w", err)
	}

	return requireAffected(result, fmt.Sprintf("member %d", memberID))
}

// RemoveMember detaches a member from whatever group it belongs to.
func (m *GroupModel) RemoveMember(ctx context.Context, memberID int64) error {
	_, err := m.db.NewUpdate().
		Model((*types.Member)(nil)).
		Set("group_id = NULL").
		Set("group_pos = NULL").
		Where("id = ?", memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove member from group: %w", err)
	}

	return nil
}

// Delete removes a group, detaching its members first.
// Returns true if a group was removed.
func (m *GroupModel) Delete(ctx context.Context, groupID int64) (bool, error) {
	var deleted bool

	err := m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*types.Member)(nil)).
			Set("group_id = NULL").
			Set("group_pos = NULL").
			Where("group_id = ?", groupID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to detach group members: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*types.Group)(nil)).
			Where("id = ?", groupID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		deleted = affected > 0

		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// DeleteAll removes every group owned by userID, detaching their members.
func (m *GroupModel) DeleteAll(ctx context.Context, userID string) (int64, error) {
	var deleted int64

	err := m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*types.Member)(nil)).
			Set("group_id = NULL").
			Set("group_pos = NULL").
			Where("user_id = ?", userID).
			Where("group_id IS NOT NULL").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to detach group members: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*types.Group)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete groups: %w", err)
		}

		deleted, err = result.RowsAffected()

		return err
	})

	return deleted, err
}
