package enum

// Category represents a lexicon category matched by the classifier.
//
//go:generate go tool enumer -type=Category -trimprefix=Category -transform=lower
type Category int

const (
	// CategoryAbuse indicates abusive or profane language.
	CategoryAbuse Category = iota
	// CategorySpam indicates promotional or repetitive spam content.
	CategorySpam
	// CategoryDistress indicates language suggesting the author may be in distress.
	CategoryDistress
)

// Severity represents how serious a flagged message is.
//
//go:generate go tool enumer -type=Severity -trimprefix=Severity -transform=lower
type Severity int

const (
	// SeverityMedium is the default severity for a small number of matches.
	SeverityMedium Severity = iota
	// SeverityHigh indicates more than two lexicon matches in one message.
	SeverityHigh
	// SeverityCritical indicates a distress match and always takes precedence.
	SeverityCritical
)
