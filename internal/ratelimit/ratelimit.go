// Package ratelimit throttles support ticket creation with sliding windows
// recomputed from stored tickets on every check. No counter state is
// persisted, so the limiter is always consistent with the ticket table.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/setup/config"
)

const (
	// DayWindow is the trailing span of the daily caps.
	DayWindow = 24 * time.Hour
	// HourWindow is the trailing span of the hourly cap.
	HourWindow = time.Hour

	dailyLimitReason        = "Daily ticket limit reached. Please try again tomorrow."
	hourlyLimitReason       = "Hourly ticket limit reached. Please try again later."
	highPriorityLimitReason = "Daily high-priority ticket limit reached. " +
		"Please submit as normal priority or try again tomorrow."
)

// TicketSource provides a user's recent tickets, oldest first.
type TicketSource interface {
	GetForUserSince(ctx context.Context, userID string, since time.Time) ([]*types.SupportTicket, error)
}

// Result is the outcome of one rate limit check. On rejection, Reason is set
// and RetryAfter holds the time until the oldest ticket in the violated
// window slides out of it. On acceptance, the remaining counts let the caller
// warn the user before they hit a cap.
type Result struct {
	Allowed    bool
	Reason     string
	RetryAfter time.Duration

	DailyRemaining        int
	HourlyRemaining       int
	HighPriorityRemaining int
}

// Limiter checks ticket creation against the configured sliding windows.
type Limiter struct {
	tickets TicketSource
	limits  config.RateLimits
	logger  *zap.Logger
	now     func() time.Time
}

// NewLimiter creates a limiter backed by the given ticket source.
func NewLimiter(tickets TicketSource, limits config.RateLimits, logger *zap.Logger) *Limiter {
	return &Limiter{
		tickets: tickets,
		limits:  limits,
		logger:  logger.Named("ratelimit"),
		now:     time.Now,
	}
}

// Check evaluates the windows in order: daily cap, hourly cap, then the daily
// high-priority cap when the proposed ticket is high priority. The first
// violated window wins.
func (l *Limiter) Check(ctx context.Context, userID string, priority enum.TicketPriority) (*Result, error) {
	now := l.now()

	recent, err := l.tickets.GetForUserSince(ctx, userID, now.Add(-DayWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get recent tickets for user %s: %w", userID, err)
	}

	var (
		daily        []*types.SupportTicket
		hourly       []*types.SupportTicket
		highPriority []*types.SupportTicket
		hourCutoff   = now.Add(-HourWindow)
	)

	for _, ticket := range recent {
		daily = append(daily, ticket)

		if !ticket.CreatedAt.Before(hourCutoff) {
			hourly = append(hourly, ticket)
		}

		if ticket.Priority == enum.TicketPriorityHigh {
			highPriority = append(highPriority, ticket)
		}
	}

	if len(daily) >= l.limits.TicketsPerDay {
		return l.reject(userID, dailyLimitReason, daily[0], DayWindow, now), nil
	}

	if len(hourly) >= l.limits.TicketsPerHour {
		return l.reject(userID, hourlyLimitReason, hourly[0], HourWindow, now), nil
	}

	if priority == enum.TicketPriorityHigh && len(highPriority) >= l.limits.HighPriorityPerDay {
		return l.reject(userID, highPriorityLimitReason, highPriority[0], DayWindow, now), nil
	}

	return &Result{
		Allowed:               true,
		DailyRemaining:        l.limits.TicketsPerDay - len(daily),
		HourlyRemaining:       l.limits.TicketsPerHour - len(hourly),
		HighPriorityRemaining: l.limits.HighPriorityPerDay - len(highPriority),
	}, nil
}

// reject builds a rejection result. The oldest ticket in the violated window
// determines when the caller can retry.
func (l *Limiter) reject(userID, reason string, oldest *types.SupportTicket, window time.Duration, now time.Time) *Result {
	retryAfter := max(oldest.CreatedAt.Add(window).Sub(now), 0)

	l.logger.Debug("Ticket creation rejected",
		zap.String("userID", userID),
		zap.String("reason", reason),
		zap.Duration("retryAfter", retryAfter))

	return &Result{
		Reason:     reason,
		RetryAfter: retryAfter,
	}
}
