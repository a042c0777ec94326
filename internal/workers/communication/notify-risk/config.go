// internal/workers/communication/notify-risk/config.go
package notifyrisk

import "time"

type Config struct {
	Timeout      time.Duration
	InputSchema  map[string]interface{}
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	Recipients   []string
	PhoneNumbers []string
	EmailTiers   []string
	SenderID     string
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:    20 * time.Second,
		EmailTiers: []string{"high", "critical"},
	}
}

func (c *Config) emailsTier(tier string) bool {
	for _, t := range c.EmailTiers {
		if t == tier {
			return true
		}
	}
	return false
}
