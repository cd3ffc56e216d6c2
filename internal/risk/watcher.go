package risk

import (
	"context"
	"sync"

	"github.com/leandro-lugaresi/hub"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/event"
)

// Watcher drives the aggregator and enforcer reactively: every violation
// created or resolved for a user triggers a recompute of that user's profile
// followed by a restriction update. Redundant concurrent recomputes for the
// same user are harmless because the profile write is a deterministic
// replacement snapshot.
type Watcher struct {
	aggregator *Aggregator
	enforcer   *Enforcer
	eventHub   *hub.Hub
	logger     *zap.Logger

	sub       hub.Subscription
	pool      *pool.Pool
	closeOnce sync.Once
	done      chan struct{}
}

// NewWatcher creates a watcher ready to be started.
func NewWatcher(aggregator *Aggregator, enforcer *Enforcer, eventHub *hub.Hub, logger *zap.Logger) *Watcher {
	return &Watcher{
		aggregator: aggregator,
		enforcer:   enforcer,
		eventHub:   eventHub,
		logger:     logger.Named("risk_watcher"),
		pool:       pool.New().WithMaxGoroutines(4),
		done:       make(chan struct{}),
	}
}

// Start subscribes to violation events and processes them until Close is
// called. The context bounds the store operations of in-flight recomputes.
func (w *Watcher) Start(ctx context.Context) {
	w.sub = w.eventHub.Subscribe(64, event.ViolationCreated, event.ViolationResolved)

	go func() {
		defer close(w.done)

		for msg := range w.sub.Receiver {
			userID, ok := msg.Fields["user_id"].(string)
			if !ok || userID == "" {
				w.logger.Warn("Dropping event without user ID", zap.String("event", msg.Name))
				continue
			}

			w.pool.Go(func() {
				w.process(ctx, userID)
			})
		}
	}()
}

// Close stops the subscription and waits for in-flight recomputes to finish.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		w.eventHub.Unsubscribe(w.sub)
		<-w.done
		w.pool.Wait()
	})
}

func (w *Watcher) process(ctx context.Context, userID string) {
	profile, err := w.aggregator.Recompute(ctx, userID)
	if err != nil {
		w.logger.Error("Failed to recompute risk profile",
			zap.String("userID", userID), zap.Error(err))
		return
	}

	if _, err := w.enforcer.Apply(ctx, userID, profile.RiskLevel); err != nil {
		w.logger.Error("Failed to enforce restrictions",
			zap.String("userID", userID), zap.Error(err))
	}
}
