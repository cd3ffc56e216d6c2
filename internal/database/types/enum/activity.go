package enum

// ActivityType represents the kind of moderation action recorded in the audit log.
//
//go:generate go tool enumer -type=ActivityType -trimprefix=ActivityType -transform=snake
type ActivityType int

const (
	// ActivityTypeMessageAutoRemoved indicates the system removed a message automatically.
	ActivityTypeMessageAutoRemoved ActivityType = iota
	// ActivityTypeMessageRemoved indicates an administrator removed a message.
	ActivityTypeMessageRemoved
	// ActivityTypeMessageApproved indicates an administrator approved a flagged message.
	ActivityTypeMessageApproved
	// ActivityTypeViolationResolved indicates an administrator resolved a violation record.
	ActivityTypeViolationResolved
	// ActivityTypeUserBanned indicates an administrator banned a user.
	ActivityTypeUserBanned
	// ActivityTypeUserUnbanned indicates an administrator unbanned a user.
	ActivityTypeUserUnbanned
)
