// Package scheduler turns the live stream of new messages into committed
// moderation decisions. Bursts are debounced into batch passes, at most one
// pass runs at a time, and all mutations of a pass commit atomically.
package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/classifier"
	"github.com/mindhaven/sentinel/internal/database/service"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/engine"
	"github.com/mindhaven/sentinel/internal/event"
	"github.com/mindhaven/sentinel/internal/setup/config"
)

// state is the debounce state machine tag. Transitions:
// Idle -> Debouncing on a trigger, Debouncing -> Debouncing (timer reset) on
// further triggers, Debouncing -> Running when the quiet period elapses,
// Running -> Debouncing when a trigger arrived mid-run, else Running -> Idle.
type state int

const (
	stateIdle state = iota
	stateDebouncing
	stateRunning
)

// MessageSource provides the message reads a batch pass needs.
type MessageSource interface {
	GetUnanalyzed(ctx context.Context, limit int) ([]*types.Message, error)
	GetRecentByAuthor(ctx context.Context, authorID, excludeID string, limit int) ([]*types.Message, error)
}

// BatchCommitter commits all results of one pass atomically.
type BatchCommitter interface {
	CommitAnalysis(ctx context.Context, results []*service.AnalysisResult) error
}

// Scheduler consumes message created events and drives the classifier and
// decision engine over debounced batches.
type Scheduler struct {
	messages   MessageSource
	committer  BatchCommitter
	classifier *classifier.Classifier
	engine     *engine.Engine
	dedup      *DedupCache
	eventHub   *hub.Hub
	logger     *zap.Logger

	batchSize     int
	debounce      time.Duration
	recentHistory int
	now           func() time.Time

	mu      sync.Mutex
	state   state
	timer   *time.Timer
	pending bool
	closed  bool

	sub       hub.Subscription
	done      chan struct{}
	running   sync.WaitGroup
	closeOnce sync.Once
}

// New creates a scheduler ready to be started.
func New(
	messages MessageSource,
	committer BatchCommitter,
	cls *classifier.Classifier,
	eng *engine.Engine,
	dedup *DedupCache,
	eventHub *hub.Hub,
	cfg *config.ModerationConfig,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		messages:      messages,
		committer:     committer,
		classifier:    cls,
		engine:        eng,
		dedup:         dedup,
		eventHub:      eventHub,
		logger:        logger.Named("scheduler"),
		batchSize:     cfg.BatchSize,
		debounce:      time.Duration(cfg.DebounceMS) * time.Millisecond,
		recentHistory: cfg.RecentHistory,
		now:           time.Now,
		done:          make(chan struct{}),
	}
}

// Start subscribes to message created events and debounces them into batch
// passes until Close is called. The context bounds the store operations of
// in-flight passes.
func (s *Scheduler) Start(ctx context.Context) {
	s.sub = s.eventHub.Subscribe(256, event.MessageCreated)

	go func() {
		defer close(s.done)

		for range s.sub.Receiver {
			s.trigger(ctx)
		}
	}()
}

// Close cancels the subscription and any pending debounce timer, then waits
// for an in-flight pass to finish. No background work continues afterwards.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true

		if s.timer != nil {
			s.timer.Stop()
		}
		s.mu.Unlock()

		s.eventHub.Unsubscribe(s.sub)
		<-s.done
		s.running.Wait()
	})
}

// trigger advances the state machine for one observed change.
func (s *Scheduler) trigger(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch s.state {
	case stateIdle:
		s.state = stateDebouncing
		s.timer = time.AfterFunc(s.debounce, func() { s.fire(ctx) })
	case stateDebouncing:
		// Reset the quiet period; bursts coalesce into one pass.
		s.timer.Reset(s.debounce)
	case stateRunning:
		s.pending = true
	}
}

// fire runs when the quiet period elapses without further triggers.
func (s *Scheduler) fire(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.state != stateDebouncing {
		s.mu.Unlock()
		return
	}

	s.state = stateRunning
	s.running.Add(1)
	s.mu.Unlock()

	defer s.running.Done()

	s.runBatch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending && !s.closed {
		// A trigger arrived mid-run; one follow-up pass covers all of them.
		s.pending = false
		s.state = stateDebouncing
		s.timer = time.AfterFunc(s.debounce, func() { s.fire(ctx) })

		return
	}

	s.state = stateIdle
}

// runBatch executes one pass: snapshot, dedup, analyze, commit. A store
// failure abandons the whole pass; nothing is marked analyzed and the
// messages stay eligible for the next trigger.
func (s *Scheduler) runBatch(ctx context.Context) {
	messages, err := s.messages.GetUnanalyzed(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("Failed to fetch unanalyzed messages", zap.Error(err))
		return
	}

	if len(messages) == 0 {
		return
	}

	ids := make([]string, len(messages))
	byID := make(map[string]*types.Message, len(messages))

	for i, msg := range messages {
		ids[i] = msg.ID
		byID[msg.ID] = msg
	}

	results := make([]*service.AnalysisResult, 0, len(messages))
	for _, id := range s.dedup.FilterProcessed(ctx, ids) {
		results = append(results, s.analyze(ctx, byID[id]))
	}

	if len(results) == 0 {
		return
	}

	if err := s.committer.CommitAnalysis(ctx, results); err != nil {
		s.logger.Error("Failed to commit batch, abandoning pass",
			zap.Int("messages", len(results)),
			zap.Error(err))

		return
	}

	committed := make([]string, len(results))
	for i, result := range results {
		committed[i] = result.Message.ID
	}

	s.dedup.MarkProcessed(ctx, committed)

	s.logger.Info("Completed batch pass", zap.Int("messages", len(results)))
}

// analyze runs the classifier and decision engine over one message. A failed
// history read marks the message analyzed with an error flag instead of
// wedging the loop on it forever.
func (s *Scheduler) analyze(ctx context.Context, msg *types.Message) *service.AnalysisResult {
	now := s.now()
	result := &service.AnalysisResult{Message: msg}

	msg.IsAnalyzed = true
	msg.AnalyzedAt = &now

	recent, err := s.messages.GetRecentByAuthor(ctx, msg.AuthorID, msg.ID, s.recentHistory)
	if err != nil {
		s.logger.Warn("Failed to fetch author history, marking message with analysis error",
			zap.String("messageID", msg.ID),
			zap.Error(err))

		msg.AnalysisError = true

		return result
	}

	if c := s.classifier.Classify(msg.Text); c != nil {
		msg.IsFlagged = true
		msg.FlagType = c.FlagType()
		msg.Categories = c.Categories
		msg.Severity = c.Severity
		msg.DetectedWords = c.DetectedWords
		msg.FlaggedAt = &now

		result.Violation = &types.ViolationRecord{
			ID:            uuid.New(),
			UserID:        msg.AuthorID,
			MessageID:     msg.ID,
			Categories:    c.Categories,
			Severity:      c.Severity,
			DetectedWords: c.DetectedWords,
			Status:        enum.ViolationStatusPending,
			CreatedAt:     now,
		}
	}

	decision := s.engine.Decide(msg, recent, now)
	if !decision.IsFlagged {
		return result
	}

	if !msg.IsFlagged {
		msg.IsFlagged = true
		msg.FlaggedAt = &now
	}

	if decision.Action == enum.ModerationActionAutoRemove {
		msg.Text = types.RemovedBySystemText
		msg.IsRemoved = true
		msg.RemovedAt = &now

		result.Audit = &types.ActivityLog{
			ID:           uuid.New(),
			ActivityType: enum.ActivityTypeMessageAutoRemoved,
			ActorID:      types.SystemActor,
			UserID:       msg.AuthorID,
			MessageID:    msg.ID,
			Reason:       strings.Join(decision.Reasons, "; "),
			Analysis:     &decision.MessageAnalysis,
			CreatedAt:    now,
		}
	}

	return result
}
