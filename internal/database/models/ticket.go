package models

import (
	"context"
	"fmt"
	"time"

	"github.com/mindhaven/sentinel/internal/database/dbretry"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// TicketModel handles database operations for support tickets.
type TicketModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewTicket creates a new TicketModel instance.
func NewTicket(db *bun.DB, logger *zap.Logger) *TicketModel {
	return &TicketModel{
		db:     db,
		logger: logger.Named("db_ticket"),
	}
}

// Create stores a new support ticket.
func (m *TicketModel) Create(ctx context.Context, ticket *types.SupportTicket) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().Model(ticket).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		return nil
	})
}

// GetForUserSince retrieves a user's tickets created at or after the given
// time, oldest first. The rate limiter recomputes its sliding windows from
// this set on every check instead of keeping counters.
func (m *TicketModel) GetForUserSince(
	ctx context.Context, userID string, since time.Time,
) ([]*types.SupportTicket, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.SupportTicket, error) {
		var tickets []*types.SupportTicket

		err := m.db.NewSelect().
			Model(&tickets).
			Where("user_id = ?", userID).
			Where("created_at >= ?", since).
			Order("created_at ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tickets for user: %w", err)
		}

		return tickets, nil
	})
}
