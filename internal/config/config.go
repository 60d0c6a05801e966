// Package config provides environment-based configuration for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultPort                  = 8080
	DefaultMaxGenerationAttempts = 3
	DefaultRetryBaseDelay        = time.Second
)

// Config holds the runtime configuration, loaded from the environment.
type Config struct {
	Port        int
	DatabaseURL string

	// GeminiAPIKeys is the fixed credential pool; one key is picked at
	// random per generation run.
	GeminiAPIKeys []string

	// MaxGenerationAttempts bounds the parse-retry loop per stage call.
	MaxGenerationAttempts int

	// RetryBaseDelay is the linear backoff unit between attempts.
	RetryBaseDelay time.Duration
}

// Load reads configuration from the environment. DATABASE_URL is the
// only hard requirement; everything else has a default or may be empty
// (an empty key pool fails at run time, not at startup, so the health
// endpoint stays useful).
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  DefaultPort,
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		GeminiAPIKeys:         splitKeys(os.Getenv("GEMINI_API_KEYS")),
		MaxGenerationAttempts: DefaultMaxGenerationAttempts,
		RetryBaseDelay:        DefaultRetryBaseDelay,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("MAX_GENERATION_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts <= 0 {
			return nil, fmt.Errorf("invalid MAX_GENERATION_ATTEMPTS: %q", v)
		}
		cfg.MaxGenerationAttempts = attempts
	}

	if v := os.Getenv("GENERATION_RETRY_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid GENERATION_RETRY_DELAY_MS: %q", v)
		}
		cfg.RetryBaseDelay = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

// splitKeys parses a comma-separated key list, trimming whitespace and
// keeping empty slots so a misconfigured pool is observable rather than
// silently shrunk.
func splitKeys(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]string, len(parts))
	for i, p := range parts {
		keys[i] = strings.TrimSpace(p)
	}
	return keys
}
