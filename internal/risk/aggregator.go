// Package risk maintains per-user risk profiles and applies the account-level
// restrictions they imply. Profiles are recomputed from the user's full
// violation history and written as a replacement snapshot, so concurrent or
// replayed recomputations always converge to the same result.
package risk

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

// RecentWindow is the trailing window for the recentFlagged counter.
const RecentWindow = 30 * 24 * time.Hour

// ViolationSource provides a user's violation history.
type ViolationSource interface {
	GetByUser(ctx context.Context, userID string) ([]*types.ViolationRecord, error)
}

// ProfileStore persists recomputed risk profiles.
type ProfileStore interface {
	Upsert(ctx context.Context, profile *types.UserRiskProfile) error
}

// Aggregator recomputes user risk profiles from violation history.
type Aggregator struct {
	violations ViolationSource
	profiles   ProfileStore
	logger     *zap.Logger
	now        func() time.Time
}

// NewAggregator creates an aggregator backed by the given stores.
func NewAggregator(violations ViolationSource, profiles ProfileStore, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		violations: violations,
		profiles:   profiles,
		logger:     logger.Named("aggregator"),
		now:        time.Now,
	}
}

// Recompute rebuilds the user's risk profile from their current violation set
// and stores it as a full replacement.
func (a *Aggregator) Recompute(ctx context.Context, userID string) (*types.UserRiskProfile, error) {
	violations, err := a.violations.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get violations for user %s: %w", userID, err)
	}

	profile := Reduce(userID, violations, a.now())
	if err := a.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store risk profile for user %s: %w", userID, err)
	}

	a.logger.Debug("Recomputed risk profile",
		zap.String("userID", userID),
		zap.Int("totalFlagged", profile.TotalFlagged),
		zap.Int("recentFlagged", profile.RecentFlagged),
		zap.String("riskLevel", profile.RiskLevel.String()))

	return profile, nil
}

// Reduce folds a violation set into a risk profile snapshot. It is a pure
// function of the set, so the result is independent of the order violations
// were recorded or replayed in. Resolution status does not affect the counts;
// reviewed violations remain part of the user's history.
func Reduce(userID string, violations []*types.ViolationRecord, now time.Time) *types.UserRiskProfile {
	profile := &types.UserRiskProfile{
		UserID:      userID,
		LastUpdated: now,
	}

	cutoff := now.Add(-RecentWindow)

	for _, v := range violations {
		profile.TotalFlagged++

		if v.CreatedAt.After(cutoff) {
			profile.RecentFlagged++
		}

		for _, category := range v.Categories {
			switch category {
			case enum.CategorySpam:
				profile.SpamCount++
			case enum.CategoryAbuse:
				profile.AbuseCount++
			case enum.CategoryDistress:
				profile.DistressCount++
			}
		}
	}

	profile.RiskLevel = LevelFor(profile)

	return profile
}

// LevelFor maps profile counters to a risk level. Thresholds are evaluated in
// order and the first match wins. The harassment threshold is retained even
// though no classifier category currently feeds HarassmentCount.
func LevelFor(profile *types.UserRiskProfile) enum.RiskLevel {
	switch {
	case profile.RecentFlagged >= 5 || profile.HarassmentCount >= 2:
		return enum.RiskLevelHigh
	case profile.RecentFlagged >= 3 || profile.SpamCount >= 3:
		return enum.RiskLevelMedium
	default:
		return enum.RiskLevelLow
	}
}
