package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

// SystemActor identifies automatic actions in the audit log.
const SystemActor = "system"

// ActivityLog is an append-only audit entry for moderation actions. Entries are
// written for every automatic removal and every administrator ban/unban or
// message decision, and are never updated or deleted.
type ActivityLog struct {
	ID           uuid.UUID         `bun:",pk,type:uuid"`
	ActivityType enum.ActivityType `bun:",notnull"`
	ActorID      string            `bun:",notnull"` // SystemActor for automatic actions
	UserID       string            `bun:",nullzero"`
	MessageID    string            `bun:",nullzero"`
	Reason       string            `bun:",type:text"`
	Analysis     *MessageAnalysis  `bun:",type:jsonb,nullzero"` // Full engine payload for auto-removals
	CreatedAt    time.Time         `bun:",notnull"`
}
