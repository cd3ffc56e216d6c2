package enum

// ViolationStatus represents the administrative state of a violation record.
//
//go:generate go tool enumer -type=ViolationStatus -trimprefix=ViolationStatus -transform=lower
type ViolationStatus int

const (
	// ViolationStatusPending indicates the violation has not been reviewed yet.
	ViolationStatusPending ViolationStatus = iota
	// ViolationStatusReviewed indicates an administrator reviewed and kept the message.
	ViolationStatusReviewed
	// ViolationStatusRemoved indicates an administrator removed the message.
	ViolationStatusRemoved
)
