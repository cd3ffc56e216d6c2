package scheduler

import (
	"context"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// DedupKeyPrefix is the Redis key prefix for processed message IDs.
const DedupKeyPrefix = "processed_message:"

// DedupCache guards against re-processing a message delivered more than once
// by the event stream. It is best-effort: a Redis failure lets the message
// through, and the persisted is_analyzed flag stays the authoritative guard.
// The cache is passed into each scheduler instance, there is no shared
// package-level state, so tests can run independent schedulers side by side.
type DedupCache struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDedupCache creates a dedup cache over the given Redis client.
func NewDedupCache(client rueidis.Client, ttl time.Duration, logger *zap.Logger) *DedupCache {
	return &DedupCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("dedup_cache"),
	}
}

// FilterProcessed returns the IDs that have not been marked processed within
// the TTL window. IDs whose lookup fails are included so a Redis outage can
// only cause duplicate analysis attempts, never dropped messages.
func (d *DedupCache) FilterProcessed(ctx context.Context, ids []string) []string {
	if len(ids) == 0 {
		return ids
	}

	unprocessed := make([]string, 0, len(ids))
	cacheHits := 0

	for _, id := range ids {
		key := DedupKeyPrefix + id

		exists, err := d.client.Do(ctx, d.client.B().Exists().Key(key).Build()).AsBool()
		if err != nil {
			d.logger.Warn("Failed to check processed status, including message",
				zap.String("messageID", id),
				zap.Error(err))

			unprocessed = append(unprocessed, id)

			continue
		}

		if exists {
			cacheHits++
		} else {
			unprocessed = append(unprocessed, id)
		}
	}

	if cacheHits > 0 {
		d.logger.Debug("Filtered processed messages",
			zap.Int("total", len(ids)),
			zap.Int("cacheHits", cacheHits))
	}

	return unprocessed
}

// MarkProcessed records the IDs as processed with the configured TTL.
// Failures are logged per key and otherwise ignored.
func (d *DedupCache) MarkProcessed(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}

	for _, id := range ids {
		key := DedupKeyPrefix + id

		err := d.client.Do(ctx, d.client.B().Set().Key(key).Value("1").Ex(d.ttl).Build()).Error()
		if err != nil {
			d.logger.Warn("Failed to mark message as processed",
				zap.String("messageID", id),
				zap.Error(err))
		}
	}
}
