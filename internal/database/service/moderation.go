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
)

var (
	// ErrCannotBanAdmin indicates a ban or unban targeted an administrator account.
	ErrCannotBanAdmin = errors.New("cannot change ban status of an administrator account")
	// ErrInvalidResolution indicates a violation resolution with a non-terminal status.
	ErrInvalidResolution = errors.New("violation can only be resolved as reviewed or removed")
)

// MessageStore provides the message reads and removals moderation needs.
type MessageStore interface {
	Get(ctx context.Context, id string) (*types.Message, error)
	SetRemoved(ctx context.Context, id, placeholder string, removedAt time.Time) (bool, error)
}

// ViolationStore provides violation lookups and resolution transitions.
type ViolationStore interface {
	Get(ctx context.Context, id uuid.UUID) (*types.ViolationRecord, error)
	Resolve(ctx context.Context, violation *types.ViolationRecord, status enum.ViolationStatus, resolvedAt time.Time) (bool, error)
}

// UserStore provides user lookups and ban state writes. Banning must set the
// chat restriction fields in the same write as the ban flag.
type UserStore interface {
	Get(ctx context.Context, id string) (*types.User, error)
	SetBanned(ctx context.Context, userID string, banned bool, reason string) (bool, error)
}

// AuditLog records administrator and system actions on the append-only log.
type AuditLog interface {
	Log(ctx context.Context, log *types.ActivityLog)
}

// ModerationService handles administrator actions: resolving violations,
// removing or approving messages, and toggling manual bans. Every action is
// idempotent and every applied action writes an audit entry.
type ModerationService struct {
	messages   MessageStore
	violations ViolationStore
	users      UserStore
	activities AuditLog
	logger     *zap.Logger
	now        func() time.Time
}

// NewModeration creates a new moderation service.
func NewModeration(
	messages MessageStore,
	violations ViolationStore,
	users UserStore,
	activities AuditLog,
	logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		messages:   messages,
		violations: violations,
		users:      users,
		activities: activities,
		logger:     logger.Named("moderation_service"),
		now:        time.Now,
	}
}

// ResolveViolation transitions a pending violation to the given terminal
// status. Resolving as removed also soft-removes the flagged message. Calling
// it again on an already resolved violation is a no-op.
func (s *ModerationService) ResolveViolation(
	ctx context.Context, actorID string, violationID uuid.UUID, status enum.ViolationStatus,
) error {
	if status != enum.ViolationStatusReviewed && status != enum.ViolationStatusRemoved {
		return fmt.Errorf("%w: %s", ErrInvalidResolution, status)
	}

	violation, err := s.violations.Get(ctx, violationID)
	if err != nil {
		return err
	}

	now := s.now()

	changed, err := s.violations.Resolve(ctx, violation, status, now)
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	if status == enum.ViolationStatusRemoved {
		if _, err := s.messages.SetRemoved(ctx, violation.MessageID, types.RemovedByModeratorText, now); err != nil {
			return fmt.Errorf("failed to remove message for violation %s: %w", violationID, err)
		}
	}

	s.activities.Log(ctx, &types.ActivityLog{
		ID:           uuid.New(),
		ActivityType: enum.ActivityTypeViolationResolved,
		ActorID:      actorID,
		UserID:       violation.UserID,
		MessageID:    violation.MessageID,
		Reason:       fmt.Sprintf("resolved as %s", status),
		CreatedAt:    now,
	})

	s.logger.Info("Resolved violation",
		zap.String("violationID", violationID.String()),
		zap.String("status", status.String()),
		zap.String("actorID", actorID))

	return nil
}

// RemoveMessage replaces a message's text with the moderator placeholder.
// Removing an already removed message is a no-op.
func (s *ModerationService) RemoveMessage(ctx context.Context, actorID, messageID string) error {
	msg, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return err
	}

	now := s.now()

	changed, err := s.messages.SetRemoved(ctx, messageID, types.RemovedByModeratorText, now)
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	s.activities.Log(ctx, &types.ActivityLog{
		ID:           uuid.New(),
		ActivityType: enum.ActivityTypeMessageRemoved,
		ActorID:      actorID,
		UserID:       msg.AuthorID,
		MessageID:    messageID,
		CreatedAt:    now,
	})

	return nil
}

// ApproveMessage records that an administrator reviewed a flagged message and
// let it stand. The message itself is not mutated; flag history is preserved.
func (s *ModerationService) ApproveMessage(ctx context.Context, actorID, messageID string) error {
	msg, err := s.messages.Get(ctx, messageID)
	if err != nil {
		return err
	}

	s.activities.Log(ctx, &types.ActivityLog{
		ID:           uuid.New(),
		ActivityType: enum.ActivityTypeMessageApproved,
		ActorID:      actorID,
		UserID:       msg.AuthorID,
		MessageID:    messageID,
		CreatedAt:    s.now(),
	})

	return nil
}

// BanUser applies a manual ban. The ban restricts chat unconditionally and is
// never overwritten by automatic risk enforcement. Banning an administrator is
// rejected, banning an already banned user is a no-op.
func (s *ModerationService) BanUser(ctx context.Context, actorID, userID, reason string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsAdmin {
		return fmt.Errorf("%w: %s", ErrCannotBanAdmin, userID)
	}

	// SetBanned restricts chat in the same write as the ban flag.
	changed, err := s.users.SetBanned(ctx, userID, true, reason)
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	s.activities.Log(ctx, &types.ActivityLog{
		ID:           uuid.New(),
		ActivityType: enum.ActivityTypeUserBanned,
		ActorID:      actorID,
		UserID:       userID,
		Reason:       reason,
		CreatedAt:    s.now(),
	})

	s.logger.Info("Banned user",
		zap.String("userID", userID),
		zap.String("actorID", actorID),
		zap.String("reason", reason))

	return nil
}

// UnbanUser lifts a manual ban. Derived restrictions are left in place until
// the next risk recomputation refreshes them. Unbanning a user who is not
// banned is a no-op.
func (s *ModerationService) UnbanUser(ctx context.Context, actorID, userID string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsAdmin {
		return fmt.Errorf("%w: %s", ErrCannotBanAdmin, userID)
	}

	changed, err := s.users.SetBanned(ctx, userID, false, "")
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	s.activities.Log(ctx, &types.ActivityLog{
		ID:           uuid.New(),
		ActivityType: enum.ActivityTypeUserUnbanned,
		ActorID:      actorID,
		UserID:       userID,
		CreatedAt:    s.now(),
	})

	s.logger.Info("Unbanned user",
		zap.String("userID", userID),
		zap.String("actorID", actorID))

	return nil
}
