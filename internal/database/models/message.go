package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/leandro-lugaresi/hub"
	"github.com/mindhaven/sentinel/internal/database/dbretry"
	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/event"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrMessageNotFound indicates the referenced message does not exist.
var ErrMessageNotFound = errors.New("message not found")

// MessageModel handles database operations for chat messages.
type MessageModel struct {
	db     *bun.DB
	hub    *hub.Hub
	logger *zap.Logger
}

// NewMessage creates a new MessageModel instance.
func NewMessage(db *bun.DB, eventHub *hub.Hub, logger *zap.Logger) *MessageModel {
	return &MessageModel{
		db:     db,
		hub:    eventHub,
		logger: logger.Named("db_message"),
	}
}

// Create stores a new message and notifies subscribers. The messaging
// subsystem is the only caller; the moderation core never creates messages.
func (m *MessageModel) Create(ctx context.Context, msg *types.Message) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().Model(msg).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	m.hub.Publish(hub.Message{
		Name: event.MessageCreated,
		Fields: hub.Fields{
			"message_id": msg.ID,
			"author_id":  msg.AuthorID,
		},
	})

	return nil
}

// Get retrieves a single message by ID.
func (m *MessageModel) Get(ctx context.Context, id string) (*types.Message, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Message, error) {
		var msg types.Message

		err := m.db.NewSelect().
			Model(&msg).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrMessageNotFound
			}

			return nil, fmt.Errorf("failed to get message: %w", err)
		}

		return &msg, nil
	})
}

// GetUnanalyzed retrieves the most recent messages that have not been through
// a batch pass yet. System messages are excluded from moderation entirely.
func (m *MessageModel) GetUnanalyzed(ctx context.Context, limit int) ([]*types.Message, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Message, error) {
		var messages []*types.Message

		err := m.db.NewSelect().
			Model(&messages).
			Where("is_analyzed = false").
			Where("is_system = false").
			Order("created_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get unanalyzed messages: %w", err)
		}

		return messages, nil
	})
}

// GetRecentByAuthor retrieves an author's most recent messages excluding the
// given message, newest first. The decision engine uses this as spam context.
func (m *MessageModel) GetRecentByAuthor(
	ctx context.Context, authorID, excludeID string, limit int,
) ([]*types.Message, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Message, error) {
		var messages []*types.Message

		err := m.db.NewSelect().
			Model(&messages).
			Where("author_id = ?", authorID).
			Where("id != ?", excludeID).
			Order("created_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get recent messages for author: %w", err)
		}

		return messages, nil
	})
}

// SetRemoved soft-removes a message by replacing its text with the given
// placeholder. Returns true when the message actually transitioned, false
// when it was already removed.
func (m *MessageModel) SetRemoved(ctx context.Context, id, placeholder string, removedAt time.Time) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		res, err := m.db.NewUpdate().
			Model((*types.Message)(nil)).
			Set("text = ?", placeholder).
			Set("is_removed = true").
			Set("removed_at = ?", removedAt).
			Where("id = ?", id).
			Where("is_removed = false").
			Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to remove message: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return false, err
		}

		return affected > 0, nil
	})
}

// GetFlagged retrieves flagged messages newest first for the abuse dashboard.
func (m *MessageModel) GetFlagged(ctx context.Context, limit int) ([]*types.Message, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Message, error) {
		var messages []*types.Message

		err := m.db.NewSelect().
			Model(&messages).
			Where("is_flagged = true").
			Order("created_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get flagged messages: %w", err)
		}

		return messages, nil
	})
}
