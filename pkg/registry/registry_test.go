package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryIsValid(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{"evaluate-business", "evaluate-learner", "record-evaluation", "notify-risk"} {
		a, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, a.InputSchema, taskType)
		assert.Equal(t, a.InputSchema, reg.InputSchema(taskType))
	}
}

func TestDeclaredErrorCodes(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	tests := []struct {
		taskType string
		code     string
		timeout  time.Duration
	}{
		{"evaluate-business", "INVALID_WEIGHT", 10 * time.Second},
		{"evaluate-learner", "INCOMPLETE_CONTEXT", 10 * time.Second},
		{"record-evaluation", "ANALYTICS_WRITE_FAILED", 15 * time.Second},
		{"notify-risk", "NOTIFICATION_SEND_FAILED", 15 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.taskType, func(t *testing.T) {
			a, ok := reg.Find(tt.taskType)
			require.True(t, ok)
			assert.True(t, a.Throws(tt.code))
			assert.True(t, a.Throws("INPUT_VALIDATION_FAILED"))
			assert.False(t, a.Throws("PAYMENT_DECLINED"))
			assert.Equal(t, tt.timeout, a.TimeoutDuration(time.Minute))
		})
	}

	assert.Equal(t, time.Minute, Activity{Timeout: "soon"}.TimeoutDuration(time.Minute))
}

func TestInputSchemaUnknownTask(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	assert.Nil(t, reg.InputSchema("unknown"))
}

func TestLoadRegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "version": "2",
  "activities": [
    {"id": "compliance.business.evaluate", "taskType": "evaluate-business", "inputSchema": {"type": "object"}}
  ]
}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)
	require.NoError(t, reg.Validate())

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidateReportsProblems(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "Bad-ID", TaskType: "a"},
		{ID: "compliance.business.evaluate", TaskType: "a"},
		{ID: "compliance.business.evaluate", TaskType: ""},
		{ID: "training.learner.evaluate", TaskType: "b", InputSchema: map[string]interface{}{"type": 5}},
	}}

	err := reg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad-ID: id must follow")
	assert.Contains(t, err.Error(), "duplicate taskType a")
	assert.Contains(t, err.Error(), "duplicate id")
	assert.Contains(t, err.Error(), "taskType is required")
	assert.Contains(t, err.Error(), "training.learner.evaluate: input invalid schema")
}

func TestAddUpdateSave(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	require.NoError(t, reg.Add(Activity{ID: "training.learner.certify", TaskType: "certify-learner", Category: "training"}))
	assert.Error(t, reg.Add(Activity{ID: "training.learner.certify"}))

	require.NoError(t, reg.Update("training.learner.certify", "status", "implemented"))
	require.NoError(t, reg.Update("training.learner.certify", "retries", "2"))
	require.NoError(t, reg.Update("training.learner.certify", "timeout", "45s"))
	assert.Error(t, reg.Update("training.learner.certify", "status", "shipped"))

	tests := []struct {
		name, id, field, value string
	}{
		{"unknown id", "nope.nope.nope", "status", "x"},
		{"unknown field", "training.learner.certify", "color", "x"},
		{"bad retries", "training.learner.certify", "retries", "many"},
		{"bad timeout", "training.learner.certify", "timeout", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, reg.Update(tt.id, tt.field, tt.value))
		})
	}

	path := filepath.Join(t.TempDir(), "nested", "activities.json")
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())

	a, ok := loaded.Find("certify-learner")
	require.True(t, ok)
	assert.Equal(t, "implemented", a.ImplementationStatus)
	assert.Equal(t, 2, a.Retries)
	assert.Equal(t, "45s", a.Timeout)
	assert.Len(t, loaded.Activities, 5)
}
