package config

// Moderation pipeline defaults, used when the config file leaves the
// corresponding fields unset.
const (
	DefaultBatchSize          = 20
	DefaultDebounceMS         = 5000
	DefaultRecentHistory      = 10
	DefaultDedupTTLHours      = 24
	DefaultRuleConfidence     = 0.8
	DefaultTicketsPerDay      = 5
	DefaultTicketsPerHour     = 2
	DefaultHighPriorityPerDay = 2
)

// DefaultLexicons returns the built-in word/phrase lists for the bulk
// classifier. Deployments are expected to extend these in sentinel.toml
// rather than in code.
func DefaultLexicons() Lexicons {
	return Lexicons{
		Abuse: []string{
			"fuck", "shit", "bitch", "asshole",
			"nigger", "faggot", "slut", "whore",
			"cunt", "dick", "cock", "stupid", "idiot",
			"bastard", "motherfucker", "cocksucker", "douchebag",
			"prick", "fucking", "damn", "screw you",
		},
		Spam: []string{
			"buy now", "free", "click here", "subscribe", "check out",
			"discount", "sale", "limited offer", "act now", "winner",
			"win", "congratulations", "credit", "loan", "deal",
		},
		Distress: []string{
			"suicide", "kill myself", "i want to die", "i dont want to live",
			"depressed", "depression", "hopeless", "worthless", "self harm",
			"self-harm", "hurt myself", "no hope", "cant go on", "end my life",
		},
	}
}

// DefaultRules returns the built-in keyword/regex rules for the decision
// engine's secondary analysis.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "hate_speech",
			Pattern:  `\b(hate|violent|threat|death|kill)\b`,
			FlagType: "hate_speech",
			Reason:   "Potentially harmful content detected",
		},
		{
			Name:     "external_links",
			Pattern:  `\b(http|www\.|\.com|\.net|\.org)\b`,
			FlagType: "spam",
			Reason:   "External links not allowed",
		},
	}
}
