package types

import (
	"time"
)

// RestrictionState holds the account-level constraints derived from a user's
// risk level. The fields live on the user record so the surrounding app reads
// one document per user.
type RestrictionState struct {
	ChatRestricted     bool       `bun:",notnull"`
	RequiresModeration bool       `bun:",notnull"`
	CooldownUntil      *time.Time `bun:",nullzero"` // In the past means the restriction has lapsed
	RestrictionReason  string     `bun:",nullzero"`
}

// Active reports whether the cooldown window is still in effect at the given time.
func (r *RestrictionState) Active(now time.Time) bool {
	return r.CooldownUntil != nil && r.CooldownUntil.After(now)
}

// User represents an account record as seen by the moderation core.
type User struct {
	ID          string `bun:",pk"` // User ID shared with the surrounding app
	DisplayName string `bun:",nullzero"`
	IsAdmin     bool   `bun:",notnull"`
	IsBanned    bool   `bun:",notnull"` // Manual ban; never overwritten by automatic enforcement
	BanReason   string `bun:",nullzero"`

	RestrictionState
}
