// Package classifier implements the bulk lexicon classifier: a pure function
// from message text to matched categories and severity. Lexicons are
// configuration, not code; the classifier itself has no side effects and
// never fails.
package classifier

import (
	"strings"

	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/setup/config"
)

// Result describes a classified message. A nil Result means no category
// matched and the message is not flagged.
type Result struct {
	// Categories matched, in lexicon declaration order (abuse, spam, distress).
	Categories []enum.Category
	// Severity derived from the match set.
	Severity enum.Severity
	// DetectedWords lists the matched lexicon entries keyed by category name.
	DetectedWords map[string][]string
	// TotalMatches is the number of matched entries across all categories.
	TotalMatches int
}

// FlagType returns the primary category recorded on the message:
// distress wins over everything else, otherwise abuse.
func (r *Result) FlagType() enum.Category {
	for _, c := range r.Categories {
		if c == enum.CategoryDistress {
			return enum.CategoryDistress
		}
	}

	return enum.CategoryAbuse
}

// Classifier matches message text against the configured category lexicons.
type Classifier struct {
	lexicons []lexicon
}

type lexicon struct {
	category enum.Category
	entries  []string
}

// New creates a classifier from the configured lexicons. Entries are
// normalized to lowercase once so Classify only does containment checks.
func New(cfg config.Lexicons) *Classifier {
	return &Classifier{
		lexicons: []lexicon{
			{enum.CategoryAbuse, normalize(cfg.Abuse)},
			{enum.CategorySpam, normalize(cfg.Spam)},
			{enum.CategoryDistress, normalize(cfg.Distress)},
		},
	}
}

func normalize(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}

	return out
}

// Classify analyzes message text and returns the match result, or nil when
// nothing matched. Empty or whitespace-only text never matches. Single words
// and multi-word phrases are both matched by substring containment against
// the lowercased text, so "screw you" and "depressed" behave identically.
func (c *Classifier) Classify(text string) *Result {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil
	}

	result := &Result{
		DetectedWords: make(map[string][]string),
	}

	distress := false

	for _, lex := range c.lexicons {
		var found []string

		for _, entry := range lex.entries {
			if strings.Contains(normalized, entry) {
				found = append(found, entry)
			}
		}

		if len(found) == 0 {
			continue
		}

		result.Categories = append(result.Categories, lex.category)
		result.DetectedWords[lex.category.String()] = found
		result.TotalMatches += len(found)

		if lex.category == enum.CategoryDistress {
			distress = true
		}
	}

	if len(result.Categories) == 0 {
		return nil
	}

	// Distress always escalates to critical regardless of other matches.
	switch {
	case distress:
		result.Severity = enum.SeverityCritical
	case result.TotalMatches > 2:
		result.Severity = enum.SeverityHigh
	default:
		result.Severity = enum.SeverityMedium
	}

	return result
}
