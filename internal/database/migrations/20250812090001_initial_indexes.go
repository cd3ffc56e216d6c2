package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Batch scheduler snapshot: newest unanalyzed, non-system messages
			CREATE INDEX IF NOT EXISTS idx_messages_unanalyzed
			ON messages (created_at DESC)
			WHERE is_analyzed = false AND is_system = false;

			-- Abuse dashboard feed
			CREATE INDEX IF NOT EXISTS idx_messages_flagged
			ON messages (created_at DESC)
			WHERE is_flagged = true;

			-- Decision engine reads the author's recent history
			CREATE INDEX IF NOT EXISTS idx_messages_author_time
			ON messages (author_id, created_at DESC);

			-- Aggregator reads a user's violations by recency
			CREATE INDEX IF NOT EXISTS idx_violation_records_user_time
			ON violation_records (user_id, created_at DESC);

			-- Rate limiter counts a user's tickets inside trailing windows
			CREATE INDEX IF NOT EXISTS idx_support_tickets_user_time
			ON support_tickets (user_id, created_at DESC);

			-- Audit queries by subject user
			CREATE INDEX IF NOT EXISTS idx_activity_logs_user_time
			ON activity_logs (user_id, created_at DESC);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_messages_unanalyzed;
			DROP INDEX IF EXISTS idx_messages_flagged;
			DROP INDEX IF EXISTS idx_messages_author_time;
			DROP INDEX IF EXISTS idx_violation_records_user_time;
			DROP INDEX IF EXISTS idx_support_tickets_user_time;
			DROP INDEX IF EXISTS idx_activity_logs_user_time;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
