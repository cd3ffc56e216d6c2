// Package event defines the hub topics the store layer publishes on after
// successful commits. Components subscribe to the subsets they care about and
// must unsubscribe on shutdown.
package event

const (
	// MessageCreated fires when the messaging subsystem stores a new message.
	// 	Fields:
	// 		message_id: string
	// 		author_id: string
	MessageCreated = "message.created"
	// MessageAnalyzed fires after a batch pass commits analysis results.
	// 	Fields:
	// 		message_ids: []string
	MessageAnalyzed = "message.analyzed"
	// ViolationCreated fires when a flagged message produces a violation record.
	// 	Fields:
	// 		violation_id: uuid.UUID
	// 		user_id: string
	// 		message_id: string
	ViolationCreated = "violation.created"
	// ViolationResolved fires when an administrator resolves a violation record.
	// 	Fields:
	// 		violation_id: uuid.UUID
	// 		user_id: string
	ViolationResolved = "violation.resolved"
	// RiskProfileUpdated fires after the aggregator replaces a user's risk profile.
	// 	Fields:
	// 		user_id: string
	// 		risk_level: enum.RiskLevel
	RiskProfileUpdated = "risk.profile_updated"
)
