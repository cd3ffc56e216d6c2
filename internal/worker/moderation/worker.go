// Package moderation runs the message analysis pipeline and the risk watcher
// as a single long-lived worker.
package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/mindhaven/sentinel/internal/classifier"
	"github.com/mindhaven/sentinel/internal/engine"
	"github.com/mindhaven/sentinel/internal/redis"
	"github.com/mindhaven/sentinel/internal/risk"
	"github.com/mindhaven/sentinel/internal/scheduler"
	"github.com/mindhaven/sentinel/internal/setup"
	"go.uber.org/zap"
)

// Worker owns the batch scheduler and the risk watcher for the lifetime of
// the process.
type Worker struct {
	scheduler *scheduler.Scheduler
	watcher   *risk.Watcher
	logger    *zap.Logger
}

// New assembles the moderation pipeline from the application's shared
// dependencies.
func New(app *setup.App, logger *zap.Logger) (*Worker, error) {
	cfg := &app.Config.Moderation

	eng, err := engine.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build moderation engine: %w", err)
	}

	dedupClient, err := app.RedisManager.GetClient(redis.DedupDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get dedup Redis client: %w", err)
	}

	dedup := scheduler.NewDedupCache(
		dedupClient,
		time.Duration(cfg.DedupTTLHours)*time.Hour,
		logger,
	)

	repo := app.DB.Model()
	sched := scheduler.New(
		repo.Message(),
		app.DB.Service().Analysis(),
		classifier.New(cfg.Lexicons),
		eng,
		dedup,
		app.EventHub,
		cfg,
		logger,
	)

	aggregator := risk.NewAggregator(repo.Violation(), repo.Profile(), logger)
	enforcer := risk.NewEnforcer(repo.User(), logger)
	watcher := risk.NewWatcher(aggregator, enforcer, app.EventHub, logger)

	return &Worker{
		scheduler: sched,
		watcher:   watcher,
		logger:    logger.Named("moderation_worker"),
	}, nil
}

// Start begins consuming message and violation events. The context bounds
// the store operations of in-flight work.
func (w *Worker) Start(ctx context.Context) {
	w.scheduler.Start(ctx)
	w.watcher.Start(ctx)
	w.logger.Info("Moderation worker started")
}

// Close stops event consumption and waits for in-flight batches to finish.
func (w *Worker) Close() {
	w.scheduler.Close()
	w.watcher.Close()
	w.logger.Info("Moderation worker stopped")
}
