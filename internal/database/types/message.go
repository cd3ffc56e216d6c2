package types

import (
	"time"

	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

// RemovedBySystemText replaces the text of messages the decision engine removes.
const RemovedBySystemText = "[Message automatically removed due to violation]"

// RemovedByModeratorText replaces the text of messages an administrator removes.
const RemovedByModeratorText = "[Message removed by moderator]"

// Message represents a chat message owned by the messaging subsystem.
// The moderation core only ever mutates the analysis and flag fields. Messages
// are never deleted, only soft-removed by replacing the text with a placeholder.
type Message struct {
	ID            string              `bun:",pk"`        // Message ID assigned by the messaging subsystem
	AuthorID      string              `bun:",notnull"`   // User ID of the message author
	Text          string              `bun:",type:text"` // Raw message text (placeholder once removed)
	IsSystem      bool                `bun:",notnull"`   // System/bot messages are never analyzed
	IsAnalyzed    bool                `bun:",notnull"`   // Monotonic: set once, never reverted
	IsFlagged     bool                `bun:",notnull"`   // Whether any moderation rule matched
	FlagType      enum.Category       `bun:",nullzero"`  // Primary category (distress wins over abuse)
	Categories    []enum.Category     `bun:",type:jsonb"`
	Severity      enum.Severity       `bun:",nullzero"`
	DetectedWords map[string][]string `bun:",type:jsonb"` // Matched lexicon words keyed by category name
	AnalysisError bool                `bun:",notnull"`    // Analysis failed; marked analyzed anyway to avoid wedging the loop
	IsRemoved     bool                `bun:",notnull"`
	CreatedAt     time.Time           `bun:",notnull"`
	AnalyzedAt    *time.Time          `bun:",nullzero"`
	FlaggedAt     *time.Time          `bun:",nullzero"`
	RemovedAt     *time.Time          `bun:",nullzero"`
}

// MessageAnalysis is the decision engine's full analysis payload for one message.
// It is persisted verbatim on audit entries for auto-removals.
type MessageAnalysis struct {
	IsFlagged  bool     `json:"isFlagged"`
	FlagType   string   `json:"flagType"`
	Reasons    []string `json:"reasons"`
	Confidence float64  `json:"confidence"`
}
