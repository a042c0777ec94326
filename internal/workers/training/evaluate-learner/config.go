// internal/workers/training/evaluate-learner/config.go
package evaluatelearner

import "time"

type Config struct {
	Timeout     time.Duration
	InputSchema map[string]interface{}
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
