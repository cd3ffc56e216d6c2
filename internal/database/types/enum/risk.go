package enum

// RiskLevel represents the coarse classification of a user's recent moderation history.
//
//go:generate go tool enumer -type=RiskLevel -trimprefix=RiskLevel -transform=lower
type RiskLevel int

const (
	RiskLevelLow RiskLevel = iota
	RiskLevelMedium
	RiskLevelHigh
)
