package service_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/service"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/ratelimit"
	"github.com/mindhaven/sentinel/internal/setup/config"
)

type fakeTicketStore struct {
	history []*types.SupportTicket
	created []*types.SupportTicket
}

func (f *fakeTicketStore) Create(_ context.Context, ticket *types.SupportTicket) error {
	f.created = append(f.created, ticket)
	return nil
}

func (f *fakeTicketStore) GetForUserSince(
	_ context.Context, userID string, since time.Time,
) ([]*types.SupportTicket, error) {
	var out []*types.SupportTicket

	for _, t := range f.history {
		if t.UserID == userID && !t.CreatedAt.Before(since) {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func historyTicket(userID string, priority enum.TicketPriority, age time.Duration) *types.SupportTicket {
	return &types.SupportTicket{
		ID:        uuid.New(),
		UserID:    userID,
		Priority:  priority,
		CreatedAt: time.Now().Add(-age),
	}
}

func setupTickets(store *fakeTicketStore) *service.TicketService {
	limits := config.RateLimits{
		TicketsPerDay:      config.DefaultTicketsPerDay,
		TicketsPerHour:     config.DefaultTicketsPerHour,
		HighPriorityPerDay: config.DefaultHighPriorityPerDay,
	}
	limiter := ratelimit.NewLimiter(store, limits, zap.NewNop())

	return service.NewTicket(store, limiter, zap.NewNop())
}

func TestCreateTicket(t *testing.T) {
	t.Parallel()

	store := &fakeTicketStore{}
	svc := setupTickets(store)

	ticket, result, err := svc.CreateTicket(
		context.Background(), "u1", "cannot open journal", "the journal tab crashes", enum.TicketPriorityNormal)
	require.NoError(t, err)

	require.NotNil(t, ticket)
	assert.Equal(t, "u1", ticket.UserID)
	assert.Equal(t, "cannot open journal", ticket.Subject)
	assert.Equal(t, enum.TicketPriorityNormal, ticket.Priority)
	assert.NotEqual(t, uuid.Nil, ticket.ID)

	require.NotNil(t, result)
	assert.True(t, result.Allowed)
	assert.Equal(t, config.DefaultTicketsPerDay, result.DailyRemaining)

	require.Len(t, store.created, 1)
	assert.Equal(t, ticket, store.created[0])
}

func TestCreateTicket_DailyLimitRejected(t *testing.T) {
	t.Parallel()

	store := &fakeTicketStore{}
	for i := range 5 {
		store.history = append(store.history,
			historyTicket("u1", enum.TicketPriorityNormal, time.Duration(i+2)*time.Hour))
	}

	svc := setupTickets(store)

	ticket, result, err := svc.CreateTicket(
		context.Background(), "u1", "subject", "body", enum.TicketPriorityNormal)
	require.ErrorIs(t, err, service.ErrTicketRateLimited)

	assert.Nil(t, ticket)
	require.NotNil(t, result)
	assert.False(t, result.Allowed)
	assert.Equal(t, "Daily ticket limit reached. Please try again tomorrow.", result.Reason)
	assert.Positive(t, result.RetryAfter)

	// The rejected ticket is never stored.
	assert.Empty(t, store.created)
}

func TestCreateTicket_HighPriorityLimitOnlyAppliesToHigh(t *testing.T) {
	t.Parallel()

	store := &fakeTicketStore{}
	// Two high-priority tickets earlier today, both outside the hourly window.
	store.history = append(store.history,
		historyTicket("u1", enum.TicketPriorityHigh, 2*time.Hour),
		historyTicket("u1", enum.TicketPriorityHigh, 3*time.Hour))

	svc := setupTickets(store)

	ticket, result, err := svc.CreateTicket(
		context.Background(), "u1", "urgent", "body", enum.TicketPriorityHigh)
	require.ErrorIs(t, err, service.ErrTicketRateLimited)
	assert.Nil(t, ticket)
	assert.Equal(t,
		"Daily high-priority ticket limit reached. Please submit as normal priority or try again tomorrow.",
		result.Reason)
	assert.Empty(t, store.created)

	// The same user can still file a normal-priority ticket.
	ticket, result, err = svc.CreateTicket(
		context.Background(), "u1", "less urgent", "body", enum.TicketPriorityNormal)
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.True(t, result.Allowed)
	require.Len(t, store.created, 1)
}
