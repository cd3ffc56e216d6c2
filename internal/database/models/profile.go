package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leandro-lugaresi/hub"
	"github.com/mindhaven/sentinel/internal/database/dbretry"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/event"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ProfileModel handles database operations for user risk profiles.
type ProfileModel struct {
	db     *bun.DB
	hub    *hub.Hub
	logger *zap.Logger
}

// NewProfile creates a new ProfileModel instance.
func NewProfile(db *bun.DB, eventHub *hub.Hub, logger *zap.Logger) *ProfileModel {
	return &ProfileModel{
		db:     db,
		hub:    eventHub,
		logger: logger.Named("db_profile"),
	}
}

// Get retrieves a user's risk profile, or nil if none has been computed yet.
func (m *ProfileModel) Get(ctx context.Context, userID string) (*types.UserRiskProfile, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.UserRiskProfile, error) {
		var profile types.UserRiskProfile

		err := m.db.NewSelect().
			Model(&profile).
			Where("user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}

			return nil, fmt.Errorf("failed to get risk profile: %w", err)
		}

		return &profile, nil
	})
}

// Upsert replaces a user's risk profile with a freshly computed snapshot.
// Last writer wins is safe here since the computation is deterministic
// given the same underlying violation set.
func (m *ProfileModel) Upsert(ctx context.Context, profile *types.UserRiskProfile) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(profile).
			On("CONFLICT (user_id) DO UPDATE").
			Set("total_flagged = EXCLUDED.total_flagged").
			Set("recent_flagged = EXCLUDED.recent_flagged").
			Set("spam_count = EXCLUDED.spam_count").
			Set("abuse_count = EXCLUDED.abuse_count").
			Set("distress_count = EXCLUDED.distress_count").
			Set("harassment_count = EXCLUDED.harassment_count").
			Set("risk_level = EXCLUDED.risk_level").
			Set("last_updated = EXCLUDED.last_updated").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert risk profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	m.hub.Publish(hub.Message{
		Name: event.RiskProfileUpdated,
		Fields: hub.Fields{
			"user_id":    profile.UserID,
			"risk_level": profile.RiskLevel,
		},
	})

	return nil
}
