package models

import (
	"context"
	"fmt"

	"github.com/mindhaven/sentinel/internal/database/dbretry"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ActivityModel handles database operations for the append-only audit log.
type ActivityModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewActivity creates a new ActivityModel instance.
func NewActivity(db *bun.DB, logger *zap.Logger) *ActivityModel {
	return &ActivityModel{
		db:     db,
		logger: logger.Named("db_activity"),
	}
}

// Log stores an audit entry. Failures are logged but not propagated so an
// audit write never fails the action it records.
func (m *ActivityModel) Log(ctx context.Context, log *types.ActivityLog) {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().Model(log).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to log activity: %w", err)
		}

		return nil
	})
	if err != nil {
		m.logger.Error("Failed to log activity",
			zap.Error(err),
			zap.String("activityType", log.ActivityType.String()),
			zap.String("actorID", log.ActorID),
			zap.String("userID", log.UserID),
			zap.String("messageID", log.MessageID))

		return
	}

	m.logger.Debug("Logged activity",
		zap.String("activityType", log.ActivityType.String()),
		zap.String("actorID", log.ActorID),
		zap.String("userID", log.UserID))
}

// GetByUser retrieves audit entries concerning a user, newest first.
func (m *ActivityModel) GetByUser(ctx context.Context, userID string, limit int) ([]*types.ActivityLog, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ActivityLog, error) {
		var logs []*types.ActivityLog

		err := m.db.NewSelect().
			Model(&logs).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get activity logs: %w", err)
		}

		return logs, nil
	})
}
