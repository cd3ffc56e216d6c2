package risk_test

import (
	"context"
	"testing"
	"time"

	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/event"
	"github.com/mindhaven/sentinel/internal/risk"
)

func TestWatcher_RecomputesAndEnforces(t *testing.T) {
	t.Parallel()

	now := time.Now()
	source := &fakeViolationSource{
		violations: map[string][]*types.ViolationRecord{
			"u1": {
				violation("u1", []enum.Category{enum.CategoryAbuse}, 1*time.Hour, now),
				violation("u1", []enum.Category{enum.CategoryAbuse}, 2*time.Hour, now),
				violation("u1", []enum.Category{enum.CategorySpam}, 3*time.Hour, now),
				violation("u1", []enum.Category{enum.CategorySpam}, 4*time.Hour, now),
				violation("u1", []enum.Category{enum.CategoryDistress}, 5*time.Hour, now),
			},
		},
	}
	profiles := &fakeProfileStore{}
	users := newFakeUserStore(&types.User{ID: "u1"})

	eventHub := hub.New()
	watcher := risk.NewWatcher(
		risk.NewAggregator(source, profiles, zap.NewNop()),
		risk.NewEnforcer(users, zap.NewNop()),
		eventHub, zap.NewNop())

	watcher.Start(context.Background())

	eventHub.Publish(hub.Message{
		Name:   event.ViolationCreated,
		Fields: hub.Fields{"user_id": "u1"},
	})

	// Close drains the subscription and waits for in-flight work.
	watcher.Close()

	require.Contains(t, profiles.profiles, "u1")
	assert.Equal(t, enum.RiskLevelHigh, profiles.profiles["u1"].RiskLevel)
	assert.True(t, users.users["u1"].ChatRestricted)
	assert.True(t, users.users["u1"].RequiresModeration)
}

func TestWatcher_IgnoresMalformedEvents(t *testing.T) {
	t.Parallel()

	profiles := &fakeProfileStore{}
	eventHub := hub.New()
	watcher := risk.NewWatcher(
		risk.NewAggregator(&fakeViolationSource{}, profiles, zap.NewNop()),
		risk.NewEnforcer(newFakeUserStore(), zap.NewNop()),
		eventHub, zap.NewNop())

	watcher.Start(context.Background())

	eventHub.Publish(hub.Message{Name: event.ViolationResolved})

	watcher.Close()

	assert.Empty(t, profiles.profiles)
}
