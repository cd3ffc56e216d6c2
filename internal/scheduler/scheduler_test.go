package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/classifier"
	"github.com/mindhaven/sentinel/internal/database/service"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/engine"
	"github.com/mindhaven/sentinel/internal/event"
	"github.com/mindhaven/sentinel/internal/scheduler"
	"github.com/mindhaven/sentinel/internal/setup/config"
)

type fakeMessageSource struct {
	mu        sync.Mutex
	messages  map[string]*types.Message
	recent    map[string][]*types.Message
	recentErr error
}

func newFakeMessageSource() *fakeMessageSource {
	return &fakeMessageSource{
		messages: make(map[string]*types.Message),
		recent:   make(map[string][]*types.Message),
	}
}

func (f *fakeMessageSource) add(msg *types.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages[msg.ID] = msg
}

// GetUnanalyzed hands out copies so an abandoned pass cannot leak in-memory
// mutations back into the store.
func (f *fakeMessageSource) GetUnanalyzed(_ context.Context, limit int) ([]*types.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*types.Message

	for _, msg := range f.messages {
		if msg.IsAnalyzed || msg.IsSystem {
			continue
		}

		clone := *msg
		out = append(out, &clone)

		if len(out) == limit {
			break
		}
	}

	return out, nil
}

func (f *fakeMessageSource) GetRecentByAuthor(
	_ context.Context, authorID, excludeID string, limit int,
) ([]*types.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.recentErr != nil {
		return nil, f.recentErr
	}

	var out []*types.Message

	for _, msg := range f.recent[authorID] {
		if msg.ID == excludeID {
			continue
		}

		out = append(out, msg)

		if len(out) == limit {
			break
		}
	}

	return out, nil
}

func (f *fakeMessageSource) markAnalyzed(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if msg, ok := f.messages[id]; ok {
		msg.IsAnalyzed = true
	}
}

type fakeCommitter struct {
	mu      sync.Mutex
	source  *fakeMessageSource
	batches [][]*service.AnalysisResult
	failErr error
}

// CommitAnalysis simulates the all-or-nothing transaction: on success every
// message in the batch is persisted as analyzed, on failure none are.
func (f *fakeCommitter) CommitAnalysis(_ context.Context, results []*service.AnalysisResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failErr != nil {
		err := f.failErr
		f.failErr = nil

		return err
	}

	f.batches = append(f.batches, results)

	for _, result := range results {
		f.source.markAnalyzed(result.Message.ID)
	}

	return nil
}

func (f *fakeCommitter) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.batches)
}

func (f *fakeCommitter) batch(i int) []*service.AnalysisResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.batches[i]
}

type fixture struct {
	source    *fakeMessageSource
	committer *fakeCommitter
	eventHub  *hub.Hub
	scheduler *scheduler.Scheduler
}

func setupScheduler(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.ModerationConfig{
		BatchSize:      config.DefaultBatchSize,
		DebounceMS:     50,
		RecentHistory:  config.DefaultRecentHistory,
		RuleConfidence: config.DefaultRuleConfidence,
		Lexicons:       config.DefaultLexicons(),
		Rules:          config.DefaultRules(),
	}

	eng, err := engine.New(cfg, zap.NewNop())
	require.NoError(t, err)

	source := newFakeMessageSource()
	committer := &fakeCommitter{source: source}
	eventHub := hub.New()
	dedup, _ := setupDedup(t)

	sched := scheduler.New(
		source, committer, classifier.New(cfg.Lexicons), eng, dedup, eventHub, cfg, zap.NewNop())

	sched.Start(context.Background())
	t.Cleanup(sched.Close)

	return &fixture{
		source:    source,
		committer: committer,
		eventHub:  eventHub,
		scheduler: sched,
	}
}

func (fx *fixture) notify(msg *types.Message) {
	fx.eventHub.Publish(hub.Message{
		Name:   event.MessageCreated,
		Fields: hub.Fields{"message_id": msg.ID, "author_id": msg.AuthorID},
	})
}

func waitForBatches(t *testing.T, committer *fakeCommitter, n int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return committer.batchCount() >= n
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_AnalyzesBatch(t *testing.T) {
	t.Parallel()

	fx := setupScheduler(t)
	now := time.Now()

	distress := &types.Message{ID: "m1", AuthorID: "u1", Text: "i want to die", CreatedAt: now}
	clean := &types.Message{ID: "m2", AuthorID: "u2", Text: "good morning all", CreatedAt: now}

	fx.source.add(distress)
	fx.source.add(clean)
	fx.notify(distress)
	fx.notify(clean)

	waitForBatches(t, fx.committer, 1)

	results := fx.committer.batch(0)
	require.Len(t, results, 2)

	byID := make(map[string]*service.AnalysisResult, len(results))
	for _, result := range results {
		byID[result.Message.ID] = result
	}

	flagged := byID["m1"]
	require.NotNil(t, flagged)
	assert.True(t, flagged.Message.IsAnalyzed)
	assert.True(t, flagged.Message.IsFlagged)
	assert.Equal(t, enum.CategoryDistress, flagged.Message.FlagType)
	assert.Equal(t, enum.SeverityCritical, flagged.Message.Severity)
	require.NotNil(t, flagged.Violation)
	assert.Equal(t, []enum.Category{enum.CategoryDistress}, flagged.Violation.Categories)
	assert.Equal(t, "u1", flagged.Violation.UserID)

	unflagged := byID["m2"]
	require.NotNil(t, unflagged)
	assert.True(t, unflagged.Message.IsAnalyzed)
	assert.False(t, unflagged.Message.IsFlagged)
	assert.Nil(t, unflagged.Violation)
	assert.Nil(t, unflagged.Audit)
}

func TestScheduler_DebounceCoalescesBurst(t *testing.T) {
	t.Parallel()

	fx := setupScheduler(t)
	now := time.Now()

	for _, id := range []string{"m1", "m2", "m3", "m4"} {
		msg := &types.Message{ID: id, AuthorID: "u" + id, Text: "hello", CreatedAt: now}
		fx.source.add(msg)
		fx.notify(msg)
	}

	waitForBatches(t, fx.committer, 1)

	// The burst coalesced into a single pass covering every message.
	assert.Equal(t, 1, fx.committer.batchCount())
	assert.Len(t, fx.committer.batch(0), 4)
}

func TestScheduler_AutoRemovesFrequencySpam(t *testing.T) {
	t.Parallel()

	fx := setupScheduler(t)
	now := time.Now()

	msg := &types.Message{ID: "m5", AuthorID: "u1", Text: "message five", CreatedAt: now}
	fx.source.add(msg)

	// Four earlier messages plus the new one put five inside the 60s window.
	history := make([]*types.Message, 0, 4)
	for i := range 4 {
		history = append(history, &types.Message{
			ID:        "h" + string(rune('1'+i)),
			AuthorID:  "u1",
			Text:      "earlier message " + string(rune('a'+i)),
			CreatedAt: now.Add(-time.Duration(i+1) * 10 * time.Second),
		})
	}

	fx.source.mu.Lock()
	fx.source.recent["u1"] = history
	fx.source.mu.Unlock()

	fx.notify(msg)
	waitForBatches(t, fx.committer, 1)

	results := fx.committer.batch(0)
	require.Len(t, results, 1)

	result := results[0]
	assert.True(t, result.Message.IsFlagged)
	assert.True(t, result.Message.IsRemoved)
	assert.Equal(t, types.RemovedBySystemText, result.Message.Text)
	assert.Nil(t, result.Violation)

	require.NotNil(t, result.Audit)
	assert.Equal(t, enum.ActivityTypeMessageAutoRemoved, result.Audit.ActivityType)
	assert.Equal(t, types.SystemActor, result.Audit.ActorID)
	assert.Equal(t, "Too many messages in short time", result.Audit.Reason)
	require.NotNil(t, result.Audit.Analysis)
	assert.InDelta(t, 0.95, result.Audit.Analysis.Confidence, 1e-9)
}

func TestScheduler_CommitFailureAbandonsPass(t *testing.T) {
	t.Parallel()

	fx := setupScheduler(t)
	now := time.Now()

	msg := &types.Message{ID: "m1", AuthorID: "u1", Text: "hello", CreatedAt: now}
	fx.source.add(msg)

	fx.committer.mu.Lock()
	fx.committer.failErr = errors.New("connection reset")
	fx.committer.mu.Unlock()

	fx.notify(msg)

	// The failed pass commits nothing and the message stays unanalyzed.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, fx.committer.batchCount())

	fx.source.mu.Lock()
	analyzed := fx.source.messages["m1"].IsAnalyzed
	fx.source.mu.Unlock()
	assert.False(t, analyzed)

	// The next trigger retries the same message successfully.
	fx.notify(msg)
	waitForBatches(t, fx.committer, 1)

	results := fx.committer.batch(0)
	require.Len(t, results, 1)
	assert.Equal(t, "m1", results[0].Message.ID)
}

func TestScheduler_DedupSkipsProcessedIDs(t *testing.T) {
	t.Parallel()

	fx := setupScheduler(t)
	now := time.Now()

	first := &types.Message{ID: "m1", AuthorID: "u1", Text: "hello", CreatedAt: now}
	fx.source.add(first)
	fx.notify(first)
	waitForBatches(t, fx.committer, 1)

	// Simulate the stream redelivering m1: the store still reports it
	// unanalyzed, but the dedup cache remembers it.
	fx.source.mu.Lock()
	fx.source.messages["m1"].IsAnalyzed = false
	fx.source.mu.Unlock()

	second := &types.Message{ID: "m2", AuthorID: "u2", Text: "hi there", CreatedAt: now}
	fx.source.add(second)
	fx.notify(second)
	waitForBatches(t, fx.committer, 2)

	results := fx.committer.batch(1)
	require.Len(t, results, 1)
	assert.Equal(t, "m2", results[0].Message.ID)
}

func TestScheduler_AnalysisErrorDoesNotWedge(t *testing.T) {
	t.Parallel()

	fx := setupScheduler(t)
	now := time.Now()

	msg := &types.Message{ID: "m1", AuthorID: "u1", Text: "fuck this", CreatedAt: now}
	fx.source.add(msg)

	fx.source.mu.Lock()
	fx.source.recentErr = errors.New("history query timeout")
	fx.source.mu.Unlock()

	fx.notify(msg)
	waitForBatches(t, fx.committer, 1)

	results := fx.committer.batch(0)
	require.Len(t, results, 1)

	// Marked analyzed with the error flag, no flag metadata, no violation.
	result := results[0]
	assert.True(t, result.Message.IsAnalyzed)
	assert.True(t, result.Message.AnalysisError)
	assert.False(t, result.Message.IsFlagged)
	assert.Nil(t, result.Violation)
}

func TestScheduler_CloseCancelsPendingDebounce(t *testing.T) {
	t.Parallel()

	// A long quiet period so Close is guaranteed to land inside it.
	cfg := &config.ModerationConfig{
		BatchSize:      config.DefaultBatchSize,
		DebounceMS:     60_000,
		RecentHistory:  config.DefaultRecentHistory,
		RuleConfidence: config.DefaultRuleConfidence,
		Lexicons:       config.DefaultLexicons(),
		Rules:          config.DefaultRules(),
	}

	eng, err := engine.New(cfg, zap.NewNop())
	require.NoError(t, err)

	source := newFakeMessageSource()
	committer := &fakeCommitter{source: source}
	eventHub := hub.New()
	dedup, _ := setupDedup(t)

	sched := scheduler.New(
		source, committer, classifier.New(cfg.Lexicons), eng, dedup, eventHub, cfg, zap.NewNop())
	sched.Start(context.Background())

	msg := &types.Message{ID: "m1", AuthorID: "u1", Text: "hello", CreatedAt: time.Now()}
	source.add(msg)
	eventHub.Publish(hub.Message{
		Name:   event.MessageCreated,
		Fields: hub.Fields{"message_id": msg.ID, "author_id": msg.AuthorID},
	})

	// Whether the trigger was observed before or after Close, the pending
	// pass must not run.
	sched.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, committer.batchCount())
}
