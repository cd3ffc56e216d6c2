package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/models"
	"github.com/mindhaven/sentinel/internal/database/service"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

type fakeMessageStore struct {
	messages map[string]*types.Message
}

func (f *fakeMessageStore) Get(_ context.Context, id string) (*types.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, models.ErrMessageNotFound
	}

	return msg, nil
}

func (f *fakeMessageStore) SetRemoved(_ context.Context, id, placeholder string, removedAt time.Time) (bool, error) {
	msg, ok := f.messages[id]
	if !ok || msg.IsRemoved {
		return false, nil
	}

	msg.Text = placeholder
	msg.IsRemoved = true
	msg.RemovedAt = &removedAt

	return true, nil
}

type fakeViolationStore struct {
	violations map[uuid.UUID]*types.ViolationRecord
}

func (f *fakeViolationStore) Get(_ context.Context, id uuid.UUID) (*types.ViolationRecord, error) {
	v, ok := f.violations[id]
	if !ok {
		return nil, models.ErrViolationNotFound
	}

	return v, nil
}

func (f *fakeViolationStore) Resolve(
	_ context.Context, violation *types.ViolationRecord, status enum.ViolationStatus, resolvedAt time.Time,
) (bool, error) {
	if violation.IsResolved() {
		return false, nil
	}

	violation.Status = status
	violation.ResolvedAt = &resolvedAt

	return true, nil
}

type fakeUserStore struct {
	users map[string]*types.User
}

func (f *fakeUserStore) Get(_ context.Context, id string) (*types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserStore) SetBanned(_ context.Context, userID string, banned bool, reason string) (bool, error) {
	user, ok := f.users[userID]
	if !ok {
		return false, models.ErrUserNotFound
	}

	if user.IsBanned == banned {
		return false, nil
	}

	user.IsBanned = banned
	user.BanReason = reason

	// Banning restricts chat in the same write, mirroring the store contract.
	if banned {
		user.ChatRestricted = true
		user.RequiresModeration = true
		user.RestrictionReason = reason
	}

	return true, nil
}

type fakeAuditLog struct {
	entries []*types.ActivityLog
}

func (f *fakeAuditLog) Log(_ context.Context, log *types.ActivityLog) {
	f.entries = append(f.entries, log)
}

type moderationFixture struct {
	svc        *service.ModerationService
	messages   *fakeMessageStore
	violations *fakeViolationStore
	users      *fakeUserStore
	audit      *fakeAuditLog
}

func setupModeration() *moderationFixture {
	messages := &fakeMessageStore{messages: make(map[string]*types.Message)}
	violations := &fakeViolationStore{violations: make(map[uuid.UUID]*types.ViolationRecord)}
	users := &fakeUserStore{users: make(map[string]*types.User)}
	audit := &fakeAuditLog{}

	return &moderationFixture{
		svc:        service.NewModeration(messages, violations, users, audit, zap.NewNop()),
		messages:   messages,
		violations: violations,
		users:      users,
		audit:      audit,
	}
}

func TestBanUser(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.users.users["u1"] = &types.User{ID: "u1"}

	err := fx.svc.BanUser(context.Background(), "admin1", "u1", "harassment of other members")
	require.NoError(t, err)

	user := fx.users.users["u1"]
	assert.True(t, user.IsBanned)
	assert.Equal(t, "harassment of other members", user.BanReason)
	assert.True(t, user.ChatRestricted)
	assert.True(t, user.RequiresModeration)
	assert.Equal(t, "harassment of other members", user.RestrictionReason)

	require.Len(t, fx.audit.entries, 1)
	entry := fx.audit.entries[0]
	assert.Equal(t, enum.ActivityTypeUserBanned, entry.ActivityType)
	assert.Equal(t, "admin1", entry.ActorID)
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "harassment of other members", entry.Reason)
}

func TestBanUser_RejectsAdmin(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.users.users["a1"] = &types.User{ID: "a1", IsAdmin: true}

	err := fx.svc.BanUser(context.Background(), "admin1", "a1", "testing the guard")
	require.ErrorIs(t, err, service.ErrCannotBanAdmin)

	user := fx.users.users["a1"]
	assert.False(t, user.IsBanned)
	assert.False(t, user.ChatRestricted)
	assert.Empty(t, fx.audit.entries)
}

func TestBanUser_Idempotent(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.users.users["u1"] = &types.User{ID: "u1", IsBanned: true, BanReason: "spamming"}

	err := fx.svc.BanUser(context.Background(), "admin1", "u1", "spamming again")
	require.NoError(t, err)

	// The original ban stands untouched and nothing is re-audited.
	assert.Equal(t, "spamming", fx.users.users["u1"].BanReason)
	assert.Empty(t, fx.audit.entries)
}

func TestBanUser_UnknownUser(t *testing.T) {
	t.Parallel()

	fx := setupModeration()

	err := fx.svc.BanUser(context.Background(), "admin1", "missing", "reason")
	require.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Empty(t, fx.audit.entries)
}

func TestUnbanUser(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.users.users["u1"] = &types.User{
		ID:       "u1",
		IsBanned: true,
		RestrictionState: types.RestrictionState{
			ChatRestricted:     true,
			RequiresModeration: true,
		},
	}

	err := fx.svc.UnbanUser(context.Background(), "admin1", "u1")
	require.NoError(t, err)

	user := fx.users.users["u1"]
	assert.False(t, user.IsBanned)
	assert.Empty(t, user.BanReason)

	// Derived restrictions stay until the next risk recomputation.
	assert.True(t, user.ChatRestricted)
	assert.True(t, user.RequiresModeration)

	require.Len(t, fx.audit.entries, 1)
	assert.Equal(t, enum.ActivityTypeUserUnbanned, fx.audit.entries[0].ActivityType)
}

func TestUnbanUser_Idempotent(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.users.users["u1"] = &types.User{ID: "u1"}

	err := fx.svc.UnbanUser(context.Background(), "admin1", "u1")
	require.NoError(t, err)
	assert.Empty(t, fx.audit.entries)
}

func TestResolveViolation_InvalidStatus(t *testing.T) {
	t.Parallel()

	fx := setupModeration()

	err := fx.svc.ResolveViolation(context.Background(), "admin1", uuid.New(), enum.ViolationStatusPending)
	require.ErrorIs(t, err, service.ErrInvalidResolution)
}

func TestResolveViolation_Removed(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	violationID := uuid.New()

	fx.messages.messages["m1"] = &types.Message{ID: "m1", AuthorID: "u1", Text: "flagged text"}
	fx.violations.violations[violationID] = &types.ViolationRecord{
		ID:        violationID,
		UserID:    "u1",
		MessageID: "m1",
		Status:    enum.ViolationStatusPending,
	}

	err := fx.svc.ResolveViolation(context.Background(), "admin1", violationID, enum.ViolationStatusRemoved)
	require.NoError(t, err)

	violation := fx.violations.violations[violationID]
	assert.Equal(t, enum.ViolationStatusRemoved, violation.Status)
	require.NotNil(t, violation.ResolvedAt)

	msg := fx.messages.messages["m1"]
	assert.True(t, msg.IsRemoved)
	assert.Equal(t, types.RemovedByModeratorText, msg.Text)

	require.Len(t, fx.audit.entries, 1)
	entry := fx.audit.entries[0]
	assert.Equal(t, enum.ActivityTypeViolationResolved, entry.ActivityType)
	assert.Equal(t, "resolved as removed", entry.Reason)
}

func TestResolveViolation_Reviewed(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	violationID := uuid.New()

	fx.messages.messages["m1"] = &types.Message{ID: "m1", AuthorID: "u1", Text: "flagged text"}
	fx.violations.violations[violationID] = &types.ViolationRecord{
		ID:        violationID,
		UserID:    "u1",
		MessageID: "m1",
		Status:    enum.ViolationStatusPending,
	}

	err := fx.svc.ResolveViolation(context.Background(), "admin1", violationID, enum.ViolationStatusReviewed)
	require.NoError(t, err)

	assert.Equal(t, enum.ViolationStatusReviewed, fx.violations.violations[violationID].Status)

	// Reviewing keeps the message as it is.
	msg := fx.messages.messages["m1"]
	assert.False(t, msg.IsRemoved)
	assert.Equal(t, "flagged text", msg.Text)
}

func TestResolveViolation_AlreadyResolved(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	violationID := uuid.New()
	resolvedAt := time.Now().Add(-time.Hour)

	fx.messages.messages["m1"] = &types.Message{ID: "m1", AuthorID: "u1", Text: "flagged text"}
	fx.violations.violations[violationID] = &types.ViolationRecord{
		ID:         violationID,
		UserID:     "u1",
		MessageID:  "m1",
		Status:     enum.ViolationStatusReviewed,
		ResolvedAt: &resolvedAt,
	}

	err := fx.svc.ResolveViolation(context.Background(), "admin1", violationID, enum.ViolationStatusRemoved)
	require.NoError(t, err)

	// The earlier resolution wins; nothing changes and nothing is audited.
	assert.Equal(t, enum.ViolationStatusReviewed, fx.violations.violations[violationID].Status)
	assert.False(t, fx.messages.messages["m1"].IsRemoved)
	assert.Empty(t, fx.audit.entries)
}

func TestResolveViolation_UnknownViolation(t *testing.T) {
	t.Parallel()

	fx := setupModeration()

	err := fx.svc.ResolveViolation(context.Background(), "admin1", uuid.New(), enum.ViolationStatusReviewed)
	require.ErrorIs(t, err, models.ErrViolationNotFound)
}

func TestRemoveMessage(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.messages.messages["m1"] = &types.Message{ID: "m1", AuthorID: "u1", Text: "some text"}

	err := fx.svc.RemoveMessage(context.Background(), "admin1", "m1")
	require.NoError(t, err)

	msg := fx.messages.messages["m1"]
	assert.True(t, msg.IsRemoved)
	assert.Equal(t, types.RemovedByModeratorText, msg.Text)

	require.Len(t, fx.audit.entries, 1)
	entry := fx.audit.entries[0]
	assert.Equal(t, enum.ActivityTypeMessageRemoved, entry.ActivityType)
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "m1", entry.MessageID)
}

func TestRemoveMessage_Idempotent(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.messages.messages["m1"] = &types.Message{
		ID: "m1", AuthorID: "u1", Text: types.RemovedByModeratorText, IsRemoved: true,
	}

	err := fx.svc.RemoveMessage(context.Background(), "admin1", "m1")
	require.NoError(t, err)
	assert.Empty(t, fx.audit.entries)
}

func TestApproveMessage(t *testing.T) {
	t.Parallel()

	fx := setupModeration()
	fx.messages.messages["m1"] = &types.Message{ID: "m1", AuthorID: "u1", Text: "some text", IsFlagged: true}

	err := fx.svc.ApproveMessage(context.Background(), "admin1", "m1")
	require.NoError(t, err)

	// Approval preserves the message and its flag history.
	msg := fx.messages.messages["m1"]
	assert.False(t, msg.IsRemoved)
	assert.True(t, msg.IsFlagged)
	assert.Equal(t, "some text", msg.Text)

	require.Len(t, fx.audit.entries, 1)
	assert.Equal(t, enum.ActivityTypeMessageApproved, fx.audit.entries[0].ActivityType)
}

func TestRemoveMessage_UnknownMessage(t *testing.T) {
	t.Parallel()

	fx := setupModeration()

	err := fx.svc.RemoveMessage(context.Background(), "admin1", "missing")
	require.ErrorIs(t, err, models.ErrMessageNotFound)
}
