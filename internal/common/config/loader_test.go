package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
workers:
  evaluate-business:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "veriportal-engine", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"high", "critical"}, cfg.Notifications.Email.Tiers)
	assert.Equal(t, 604800, cfg.Analytics.RedisTTLSeconds)
	assert.Equal(t, "veriportal-evaluations", cfg.Analytics.ElasticsearchIndex)
	assert.Equal(t, 8080, cfg.Metrics.Port)

	w := cfg.Workers["evaluate-business"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFileExpandsEnv(t *testing.T) {
	t.Setenv("VP_TEST_BROKER", "zeebe:26500")
	path := writeConfig(t, `
camunda:
  broker_address: ${VP_TEST_BROKER}
engine:
  default_weights:
    legal-framework: 2
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 2.0, cfg.Engine.DefaultWeights["legal-framework"])
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "app:\n  name: x\n",
			wantErr: "camunda.broker_address",
		},
		{
			name: "unknown sink",
			body: `
camunda:
  broker_address: localhost:26500
analytics:
  sinks: [kafka]
`,
			wantErr: "unknown sink",
		},
		{
			name: "postgres sink requires host",
			body: `
camunda:
  broker_address: localhost:26500
analytics:
  sinks: [postgres]
`,
			wantErr: "database.postgres.host",
		},
		{
			name: "redis sink requires address",
			body: `
camunda:
  broker_address: localhost:26500
analytics:
  sinks: [redis]
`,
			wantErr: "database.redis.address",
		},
		{
			name: "email requires sender",
			body: `
camunda:
  broker_address: localhost:26500
notifications:
  email:
    enabled: true
`,
			wantErr: "from_email",
		},
		{
			name: "negative default weight",
			body: `
camunda:
  broker_address: localhost:26500
engine:
  default_weights:
    legal-framework: -1
`,
			wantErr: "default_weights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestElasticsearchAddresses(t *testing.T) {
	assert.Equal(t, []string{"http://a:9200"}, ElasticsearchConfig{URL: "http://a:9200"}.GetAddresses())
	assert.Equal(t, []string{"http://b:9200"}, ElasticsearchConfig{Addresses: []string{"http://b:9200"}, URL: "http://a:9200"}.GetAddresses())
	assert.Nil(t, ElasticsearchConfig{}.GetAddresses())
}

func TestWorkerConfigFallback(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"notify-risk": {Enabled: false}}}
	assert.False(t, IsWorkerEnabled(cfg, "notify-risk"))
	assert.True(t, IsWorkerEnabled(cfg, "evaluate-business"))
	assert.Equal(t, 5, GetWorkerConfig(cfg, "evaluate-business").MaxJobsActive)
}
