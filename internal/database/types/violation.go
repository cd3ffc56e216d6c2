package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

// ViolationRecord is a persisted, auditable instance of a flagged message tied
// to a user. Immutable after creation except for Status and ResolvedAt, which
// are set by administrator action.
type ViolationRecord struct {
	ID            uuid.UUID            `bun:",pk,type:uuid"`
	UserID        string               `bun:",notnull"` // Author of the flagged message
	MessageID     string               `bun:",notnull"`
	Categories    []enum.Category      `bun:",type:jsonb"`
	Severity      enum.Severity        `bun:",notnull"`
	DetectedWords map[string][]string  `bun:",type:jsonb"`
	Status        enum.ViolationStatus `bun:",notnull"`
	CreatedAt     time.Time            `bun:",notnull"`
	ResolvedAt    *time.Time           `bun:",nullzero"`
}

// IsResolved checks whether an administrator has acted on the record.
func (v *ViolationRecord) IsResolved() bool {
	return v.Status != enum.ViolationStatusPending
}
