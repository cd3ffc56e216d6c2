package enum

// ModerationAction represents what the decision engine does with a flagged message.
//
//go:generate go tool enumer -type=ModerationAction -trimprefix=ModerationAction -transform=snake
type ModerationAction int

const (
	// ModerationActionNone is the zero decision for messages no rule flagged.
	ModerationActionNone ModerationAction = iota
	// ModerationActionAutoRemove removes the message immediately and writes an audit entry.
	ModerationActionAutoRemove
	// ModerationActionManualReview leaves the message visible and queues it for an administrator.
	ModerationActionManualReview
	// ModerationActionFlagOnly records the flag without any visible effect.
	ModerationActionFlagOnly
)
