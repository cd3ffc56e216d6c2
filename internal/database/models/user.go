package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mindhaven/sentinel/internal/database/dbretry"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrUserNotFound indicates the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserModel handles database operations for account records.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new UserModel instance.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// Get retrieves an account record by ID.
func (m *UserModel) Get(ctx context.Context, id string) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		var user types.User

		err := m.db.NewSelect().
			Model(&user).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrUserNotFound
			}

			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		return &user, nil
	})
}

// ApplyRestrictions merges derived restriction fields onto the user record.
// The update carries an is_banned guard in the WHERE clause so a ban landing
// between the caller's read and this write is never loosened; the skipped
// write is not an error.
func (m *UserModel) ApplyRestrictions(ctx context.Context, userID string, state types.RestrictionState) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewUpdate().
			Model((*types.User)(nil)).
			Set("chat_restricted = ?", state.ChatRestricted).
			Set("requires_moderation = ?", state.RequiresModeration).
			Set("cooldown_until = ?", state.CooldownUntil).
			Set("restriction_reason = ?", state.RestrictionReason).
			Where("id = ?", userID).
			Where("is_banned = false").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to apply restrictions: %w", err)
		}

		return nil
	})
}

// SetBanned flips the manual ban flag. Banning also sets the chat restriction
// fields in the same statement so there is no window where the account is
// banned but unrestricted. Returns true if the flag actually changed, false
// when the call was an idempotent no-op.
func (m *UserModel) SetBanned(ctx context.Context, userID string, banned bool, reason string) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		query := m.db.NewUpdate().
			Model((*types.User)(nil)).
			Set("is_banned = ?", banned).
			Set("ban_reason = ?", reason).
			Where("id = ?", userID).
			Where("is_banned != ?", banned)

		if banned {
			query = query.
				Set("chat_restricted = true").
				Set("requires_moderation = true").
				Set("restriction_reason = ?", reason)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to set ban flag: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return false, err
		}

		return affected > 0, nil
	})
}
