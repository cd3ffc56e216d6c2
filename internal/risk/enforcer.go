package risk

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

const (
	// HighRiskCooldown is applied to high risk accounts.
	HighRiskCooldown = 24 * time.Hour
	// MediumRiskCooldown is applied to medium risk accounts.
	MediumRiskCooldown = 30 * time.Minute

	highRiskReason   = "Account restricted due to high risk activity"
	mediumRiskReason = "Messages require moderation due to elevated risk activity"
)

// UserStore provides the account reads and restriction writes the enforcer
// needs. ApplyRestrictions must skip the write when the account is banned at
// write time, so a ban landing after the enforcer's read is never loosened.
type UserStore interface {
	Get(ctx context.Context, id string) (*types.User, error)
	ApplyRestrictions(ctx context.Context, userID string, state types.RestrictionState) error
}

// Enforcer translates risk levels into account restrictions.
type Enforcer struct {
	users  UserStore
	logger *zap.Logger
	now    func() time.Time
}

// NewEnforcer creates an enforcer backed by the given user store.
func NewEnforcer(users UserStore, logger *zap.Logger) *Enforcer {
	return &Enforcer{
		users:  users,
		logger: logger.Named("enforcer"),
		now:    time.Now,
	}
}

// StateFor builds the restriction state a risk level implies at the given time.
func StateFor(level enum.RiskLevel, now time.Time) types.RestrictionState {
	switch level {
	case enum.RiskLevelHigh:
		until := now.Add(HighRiskCooldown)

		return types.RestrictionState{
			ChatRestricted:     true,
			RequiresModeration: true,
			CooldownUntil:      &until,
			RestrictionReason:  highRiskReason,
		}
	case enum.RiskLevelMedium:
		until := now.Add(MediumRiskCooldown)

		return types.RestrictionState{
			RequiresModeration: true,
			CooldownUntil:      &until,
			RestrictionReason:  mediumRiskReason,
		}
	default:
		return types.RestrictionState{}
	}
}

// Apply writes the restrictions the given risk level implies onto the user
// record. Manually banned accounts are left untouched so a later automatic
// recomputation cannot loosen what an administrator imposed.
func (e *Enforcer) Apply(ctx context.Context, userID string, level enum.RiskLevel) (types.RestrictionState, error) {
	user, err := e.users.Get(ctx, userID)
	if err != nil {
		return types.RestrictionState{}, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	if user.IsBanned {
		e.logger.Debug("Skipping restriction update for banned user",
			zap.String("userID", userID),
			zap.String("riskLevel", level.String()))

		return user.RestrictionState, nil
	}

	now := e.now()

	// A low-risk user with clear flags needs no write; a lapsed cooldown
	// counts as no cooldown here.
	if level != enum.RiskLevelHigh && level != enum.RiskLevelMedium &&
		!user.ChatRestricted && !user.RequiresModeration && !user.RestrictionState.Active(now) {
		return types.RestrictionState{}, nil
	}

	state := StateFor(level, now)
	if err := e.users.ApplyRestrictions(ctx, userID, state); err != nil {
		return types.RestrictionState{}, fmt.Errorf("failed to apply restrictions for user %s: %w", userID, err)
	}

	e.logger.Info("Applied restrictions",
		zap.String("userID", userID),
		zap.String("riskLevel", level.String()),
		zap.Bool("chatRestricted", state.ChatRestricted),
		zap.Bool("requiresModeration", state.RequiresModeration))

	return state, nil
}
