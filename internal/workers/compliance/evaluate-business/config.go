// internal/workers/compliance/evaluate-business/config.go
package evaluatebusiness

import "time"

type Config struct {
	Timeout time.Duration
	// InputSchema comes from the activity registry; nil skips schema validation.
	InputSchema map[string]interface{}
	// AttentionTiers are the overall tiers that set requiresAttention on the output.
	AttentionTiers []string
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:        10 * time.Second,
		AttentionTiers: []string{"high", "critical"},
	}
}
