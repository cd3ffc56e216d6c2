// Package service holds the business logic that spans multiple models,
// most importantly the atomic commit of one batch pass.
package service

import (
	"context"
	"fmt"

	"github.com/leandro-lugaresi/hub"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/dbretry"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/event"
)

// AnalysisResult bundles everything one batch pass decided for one message.
// The message row is always updated; the violation and audit rows are present
// only when the pass flagged or auto-removed the message.
type AnalysisResult struct {
	Message   *types.Message
	Violation *types.ViolationRecord
	Audit     *types.ActivityLog
}

// AnalysisService commits batch pass results.
type AnalysisService struct {
	db       *bun.DB
	eventHub *hub.Hub
	logger   *zap.Logger
}

// NewAnalysis creates a new analysis commit service.
func NewAnalysis(db *bun.DB, eventHub *hub.Hub, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		db:       db,
		eventHub: eventHub,
		logger:   logger.Named("analysis_service"),
	}
}

// CommitAnalysis applies all mutations of one batch pass in a single
// transaction. Either every message in the batch is marked analyzed together
// with its violation and audit rows, or none are and the whole batch stays
// eligible for the next pass. Events are published only after the commit
// succeeds.
func (s *AnalysisService) CommitAnalysis(ctx context.Context, results []*AnalysisResult) error {
	if len(results) == 0 {
		return nil
	}

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, result := range results {
				_, err := tx.NewUpdate().
					Model(result.Message).
					Column("text", "is_analyzed", "is_flagged", "flag_type", "categories",
						"severity", "detected_words", "analysis_error", "is_removed",
						"analyzed_at", "flagged_at", "removed_at").
					WherePK().
					Exec(ctx)
				if err != nil {
					return fmt.Errorf("failed to update message %s: %w", result.Message.ID, err)
				}

				if result.Violation != nil {
					if _, err := tx.NewInsert().Model(result.Violation).Exec(ctx); err != nil {
						return fmt.Errorf("failed to insert violation for message %s: %w",
							result.Message.ID, err)
					}
				}

				if result.Audit != nil {
					if _, err := tx.NewInsert().Model(result.Audit).Exec(ctx); err != nil {
						return fmt.Errorf("failed to insert audit entry for message %s: %w",
							result.Message.ID, err)
					}
				}
			}

			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("failed to commit analysis batch: %w", err)
	}

	messageIDs := make([]string, len(results))
	for i, result := range results {
		messageIDs[i] = result.Message.ID
	}

	s.eventHub.Publish(hub.Message{
		Name:   event.MessageAnalyzed,
		Fields: hub.Fields{"message_ids": messageIDs},
	})

	for _, result := range results {
		if result.Violation == nil {
			continue
		}

		s.eventHub.Publish(hub.Message{
			Name: event.ViolationCreated,
			Fields: hub.Fields{
				"violation_id": result.Violation.ID,
				"user_id":      result.Violation.UserID,
				"message_id":   result.Violation.MessageID,
			},
		})
	}

	s.logger.Debug("Committed analysis batch",
		zap.Int("messages", len(results)),
		zap.Int("violations", countViolations(results)))

	return nil
}

func countViolations(results []*AnalysisResult) int {
	var n int

	for _, result := range results {
		if result.Violation != nil {
			n++
		}
	}

	return n
}
