package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentVersion of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int              `koanf:"version"`
	Debug      Debug            `koanf:"debug"`
	PostgreSQL PostgreSQL       `koanf:"postgresql"`
	Redis      Redis            `koanf:"redis"`
	Moderation ModerationConfig `koanf:"moderation"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Write logs as console output instead of JSON.
	PrettyLogs bool `koanf:"pretty_logs"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// ModerationConfig contains the moderation pipeline configuration.
type ModerationConfig struct {
	// Number of unanalyzed messages fetched per batch pass.
	BatchSize int `koanf:"batch_size"`
	// Quiet period in milliseconds after the last observed change before a batch runs.
	DebounceMS int `koanf:"debounce_ms"`
	// Number of recent author messages fetched as spam-check context.
	RecentHistory int `koanf:"recent_history"`
	// Hours a processed message ID stays in the dedup cache.
	DedupTTLHours int `koanf:"dedup_ttl_hours"`
	// Default confidence for keyword/regex rules that do not set their own.
	RuleConfidence float64 `koanf:"rule_confidence"`
	// Lexicons for the bulk classifier.
	Lexicons Lexicons `koanf:"lexicons"`
	// Keyword/regex rules for the decision engine.
	Rules []Rule `koanf:"rules"`
	// Sliding-window caps for support ticket creation.
	RateLimits RateLimits `koanf:"rate_limits"`
}

// Lexicons holds the literal word/phrase lists for each classifier category,
// matched by substring containment against the lowercased message text.
type Lexicons struct {
	Abuse    []string `koanf:"abuse"`
	Spam     []string `koanf:"spam"`
	Distress []string `koanf:"distress"`
}

// Rule is one keyword/regex rule for the decision engine.
type Rule struct {
	// Rule name used in audit reasons.
	Name string `koanf:"name"`
	// Regular expression matched against the lowercased message text.
	Pattern string `koanf:"pattern"`
	// Flag type recorded when the rule matches.
	FlagType string `koanf:"flag_type"`
	// Human-readable reason attached to the analysis.
	Reason string `koanf:"reason"`
	// Per-rule confidence; 0 falls back to rule_confidence.
	Confidence float64 `koanf:"confidence"`
}

// RateLimits configures the ticket rate limiter's sliding windows.
type RateLimits struct {
	// Maximum tickets per user per trailing 24 hours.
	TicketsPerDay int `koanf:"tickets_per_day"`
	// Maximum tickets per user per trailing hour.
	TicketsPerHour int `koanf:"tickets_per_hour"`
	// Maximum high-priority tickets per user per trailing 24 hours.
	HighPriorityPerDay int `koanf:"high_priority_per_day"`
}

// LoadConfig loads the configuration from the specified file.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configPaths := []string{
		".sentinel",
		homeDir + "/.sentinel/config",
		"/etc/sentinel/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/sentinel.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: sentinel.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Version == 0 {
		return nil, "", fmt.Errorf("%w: sentinel.toml", ErrConfigVersionMissing)
	}

	if config.Version != CurrentVersion {
		return nil, "", fmt.Errorf("%w: sentinel.toml (got: %d, expected: %d)",
			ErrConfigVersionMismatch, config.Version, CurrentVersion)
	}

	applyDefaults(&config.Moderation)

	return &config, usedConfigPath, nil
}

// applyDefaults fills in moderation settings the config file left unset.
func applyDefaults(m *ModerationConfig) {
	if m.BatchSize == 0 {
		m.BatchSize = DefaultBatchSize
	}

	if m.DebounceMS == 0 {
		m.DebounceMS = DefaultDebounceMS
	}

	if m.RecentHistory == 0 {
		m.RecentHistory = DefaultRecentHistory
	}

	if m.DedupTTLHours == 0 {
		m.DedupTTLHours = DefaultDedupTTLHours
	}

	if m.RuleConfidence == 0 {
		m.RuleConfidence = DefaultRuleConfidence
	}

	if len(m.Lexicons.Abuse) == 0 && len(m.Lexicons.Spam) == 0 && len(m.Lexicons.Distress) == 0 {
		m.Lexicons = DefaultLexicons()
	}

	if len(m.Rules) == 0 {
		m.Rules = DefaultRules()
	}

	if m.RateLimits.TicketsPerDay == 0 {
		m.RateLimits.TicketsPerDay = DefaultTicketsPerDay
	}

	if m.RateLimits.TicketsPerHour == 0 {
		m.RateLimits.TicketsPerHour = DefaultTicketsPerHour
	}

	if m.RateLimits.HighPriorityPerDay == 0 {
		m.RateLimits.HighPriorityPerDay = DefaultHighPriorityPerDay
	}
}
