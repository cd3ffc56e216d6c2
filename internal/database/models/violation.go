package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/mindhaven/sentinel/internal/database/dbretry"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/event"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrViolationNotFound indicates the referenced violation record does not exist.
var ErrViolationNotFound = errors.New("violation record not found")

// ViolationModel handles database operations for violation records.
type ViolationModel struct {
	db     *bun.DB
	hub    *hub.Hub
	logger *zap.Logger
}

// NewViolation creates a new ViolationModel instance.
func NewViolation(db *bun.DB, eventHub *hub.Hub, logger *zap.Logger) *ViolationModel {
	return &ViolationModel{
		db:     db,
		hub:    eventHub,
		logger: logger.Named("db_violation"),
	}
}

// Get retrieves a single violation record by ID.
func (m *ViolationModel) Get(ctx context.Context, id uuid.UUID) (*types.ViolationRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.ViolationRecord, error) {
		var record types.ViolationRecord

		err := m.db.NewSelect().
			Model(&record).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrViolationNotFound
			}

			return nil, fmt.Errorf("failed to get violation record: %w", err)
		}

		return &record, nil
	})
}

// GetByUser retrieves all violation records for a user, newest first.
// The aggregator folds this set into the user's risk profile.
func (m *ViolationModel) GetByUser(ctx context.Context, userID string) ([]*types.ViolationRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ViolationRecord, error) {
		var records []*types.ViolationRecord

		err := m.db.NewSelect().
			Model(&records).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get violation records for user: %w", err)
		}

		return records, nil
	})
}

// Resolve transitions a pending violation record to the given resolution
// status. Returns true when the record actually transitioned, false when it
// was already resolved. Publishes the resolution event only on a transition.
func (m *ViolationModel) Resolve(
	ctx context.Context, violation *types.ViolationRecord, status enum.ViolationStatus, resolvedAt time.Time,
) (bool, error) {
	changed, err := dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		res, err := m.db.NewUpdate().
			Model((*types.ViolationRecord)(nil)).
			Set("status = ?", status).
			Set("resolved_at = ?", resolvedAt).
			Where("id = ?", violation.ID).
			Where("status = ?", enum.ViolationStatusPending).
			Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to resolve violation record: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return false, err
		}

		return affected > 0, nil
	})
	if err != nil || !changed {
		return false, err
	}

	violation.Status = status
	violation.ResolvedAt = &resolvedAt

	m.hub.Publish(hub.Message{
		Name: event.ViolationResolved,
		Fields: hub.Fields{
			"violation_id": violation.ID,
			"user_id":      violation.UserID,
		},
	})

	return true, nil
}

// GetPending retrieves unresolved violation records for the admin queue.
func (m *ViolationModel) GetPending(ctx context.Context, limit int) ([]*types.ViolationRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ViolationRecord, error) {
		var records []*types.ViolationRecord

		err := m.db.NewSelect().
			Model(&records).
			Where("status = ?", enum.ViolationStatusPending).
			Order("created_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get pending violation records: %w", err)
		}

		return records, nil
	})
}
