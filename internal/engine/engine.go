// Package engine implements the auto-moderation decision engine, a secondary
// context-aware pass over each message that combines configurable keyword/regex
// rules with behavioral spam checks against the author's recent history.
package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
	"github.com/mindhaven/sentinel/internal/setup/config"
)

const (
	// FrequencyWindow is how far back the frequency spam check looks.
	FrequencyWindow = 60 * time.Second
	// FrequencyThreshold is the author message count within FrequencyWindow,
	// counting the message under analysis itself, that trips the frequency
	// spam check.
	FrequencyThreshold = 5
	// DuplicateThreshold is the count of byte-identical prior messages that
	// trips the duplicate spam check.
	DuplicateThreshold = 2

	frequencyConfidence = 0.95
	duplicateConfidence = 0.9

	frequencyReason = "Too many messages in short time"
	duplicateReason = "Repeated identical messages"

	autoRemoveThreshold   = 0.9
	manualReviewThreshold = 0.7
)

// Decision is the engine's verdict for one message. The analysis payload is
// persisted verbatim on audit entries when the action is auto_remove.
type Decision struct {
	types.MessageAnalysis

	Action enum.ModerationAction
}

type rule struct {
	name       string
	pattern    *regexp.Regexp
	flagType   string
	reason     string
	confidence float64
}

// Engine evaluates messages against compiled rules and spam heuristics.
type Engine struct {
	rules  []rule
	logger *zap.Logger
}

// New compiles the configured rules into an engine.
// Returns an error if any rule pattern is not a valid regular expression.
func New(cfg *config.ModerationConfig, logger *zap.Logger) (*Engine, error) {
	rules := make([]rule, 0, len(cfg.Rules))

	for _, r := range cfg.Rules {
		pattern, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %q: %w", r.Name, err)
		}

		confidence := r.Confidence
		if confidence == 0 {
			confidence = cfg.RuleConfidence
		}

		rules = append(rules, rule{
			name:       r.Name,
			pattern:    pattern,
			flagType:   r.FlagType,
			reason:     r.Reason,
			confidence: confidence,
		})
	}

	return &Engine{
		rules:  rules,
		logger: logger.Named("engine"),
	}, nil
}

// Decide evaluates one message. The recent slice holds the author's prior
// messages used as spam-check context; it must not contain the message itself.
// Overall confidence is the arithmetic mean of every triggered signal, so a
// weak rule match dilutes a strong spam signal rather than being shadowed by it.
func (e *Engine) Decide(msg *types.Message, recent []*types.Message, now time.Time) Decision {
	var decision Decision

	normalized := strings.ToLower(msg.Text)
	confidences := make([]float64, 0, len(e.rules)+1)

	for _, r := range e.rules {
		if !r.pattern.MatchString(normalized) {
			continue
		}

		if decision.FlagType == "" {
			decision.FlagType = r.flagType
		}

		decision.Reasons = append(decision.Reasons, r.reason)
		confidences = append(confidences, r.confidence)
	}

	if reason, confidence, ok := e.checkSpam(msg, recent, now); ok {
		decision.FlagType = "spam"
		decision.Reasons = append(decision.Reasons, reason)
		confidences = append(confidences, confidence)
	}

	if len(confidences) == 0 {
		return decision
	}

	var total float64
	for _, c := range confidences {
		total += c
	}

	decision.IsFlagged = true
	decision.Confidence = total / float64(len(confidences))

	switch {
	case decision.Confidence >= autoRemoveThreshold:
		decision.Action = enum.ModerationActionAutoRemove
	case decision.Confidence >= manualReviewThreshold:
		decision.Action = enum.ModerationActionManualReview
	default:
		decision.Action = enum.ModerationActionFlagOnly
	}

	e.logger.Debug("Message flagged",
		zap.String("messageID", msg.ID),
		zap.String("authorID", msg.AuthorID),
		zap.String("flagType", decision.FlagType),
		zap.Float64("confidence", decision.Confidence),
		zap.String("action", decision.Action.String()))

	return decision
}

// checkSpam runs the behavioral checks against the author's recent history.
// The duplicate check wins when both trip, matching its stronger signal about
// intent despite the lower confidence weight.
func (e *Engine) checkSpam(msg *types.Message, recent []*types.Message, now time.Time) (string, float64, bool) {
	if len(recent) == 0 {
		return "", 0, false
	}

	var (
		reason     string
		confidence float64
		cutoff     = now.Add(-FrequencyWindow)
		duplicates int
	)

	// The message under analysis sits inside the window too, so four prior
	// messages in the last 60 seconds make five.
	inWindow := 1

	for _, prev := range recent {
		if prev.AuthorID != msg.AuthorID {
			continue
		}

		if !prev.CreatedAt.Before(cutoff) {
			inWindow++
		}

		if prev.Text == msg.Text {
			duplicates++
		}
	}

	if inWindow >= FrequencyThreshold {
		reason = frequencyReason
		confidence = frequencyConfidence
	}

	if duplicates >= DuplicateThreshold {
		reason = duplicateReason
		confidence = duplicateConfidence
	}

	return reason, confidence, reason != ""
}
