package types

import (
	"time"

	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

// UserRiskProfile is a materialized aggregate of a user's violation history.
// It is recomputed from scratch and written as a full replacement whenever new
// violations arrive for the user, which keeps it order-independent. Owned
// exclusively by the risk aggregator.
type UserRiskProfile struct {
	UserID          string         `bun:",pk"`
	TotalFlagged    int            `bun:",notnull"` // All-time flagged message count
	RecentFlagged   int            `bun:",notnull"` // Flagged messages within the trailing 30 days
	SpamCount       int            `bun:",notnull"`
	AbuseCount      int            `bun:",notnull"`
	DistressCount   int            `bun:",notnull"`
	HarassmentCount int            `bun:",notnull"` // Carried in the risk formula; no rule currently emits harassment
	RiskLevel       enum.RiskLevel `bun:",notnull"`
	LastUpdated     time.Time      `bun:",notnull"`
}
