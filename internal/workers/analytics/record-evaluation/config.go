// internal/workers/analytics/record-evaluation/config.go
package recordevaluation

import "time"

type Config struct {
	Timeout     time.Duration
	InputSchema map[string]interface{}
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
