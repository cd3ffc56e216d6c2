package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/ratelimit"
)

// ErrTicketRateLimited indicates ticket creation was rejected by the rate
// limiter. The returned Result carries the reason and retry hint.
var ErrTicketRateLimited = errors.New("ticket rate limit reached")

// TicketStore persists accepted support tickets.
type TicketStore interface {
	Create(ctx context.Context, ticket *types.SupportTicket) error
}

// TicketService handles support ticket creation on the rate-limited path.
type TicketService struct {
	tickets TicketStore
	limiter *ratelimit.Limiter
	logger  *zap.Logger
	now     func() time.Time
}

// NewTicket creates a new ticket service.
func NewTicket(tickets TicketStore, limiter *ratelimit.Limiter, logger *zap.Logger) *TicketService {
	return &TicketService{
		tickets: tickets,
		limiter: limiter,
		logger:  logger.Named("ticket_service"),
		now:     time.Now,
	}
}

// CreateTicket checks the sliding windows and, if allowed, stores the ticket.
// The rate limit result is returned in both cases so the caller can surface
// remaining quota or the retry hint to the user.
func (s *TicketService) CreateTicket(
	ctx context.Context, userID, subject, body string, priority enum.TicketPriority,
) (*types.SupportTicket, *ratelimit.Result, error) {
	result, err := s.limiter.Check(ctx, userID, priority)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check ticket rate limit: %w", err)
	}

	if !result.Allowed {
		return nil, result, ErrTicketRateLimited
	}

	ticket := &types.SupportTicket{
		ID:        uuid.New(),
		UserID:    userID,
		Subject:   subject,
		Body:      body,
		Priority:  priority,
		CreatedAt: s.now(),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, result, err
	}

	s.logger.Debug("Created support ticket",
		zap.String("ticketID", ticket.ID.String()),
		zap.String("userID", userID),
		zap.String("priority", priority.String()))

	return ticket, result, nil
}
