package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var learnerSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"learner"},
	"properties": map[string]interface{}{
		"learner": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"region":        map[string]interface{}{"type": "string"},
				"weeklyMinutes": map[string]interface{}{"type": "integer", "minimum": 0},
			},
		},
	},
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantField string
	}{
		{name: "valid", doc: `{"learner":{"region":"south","weeklyMinutes":60}}`, wantValid: true},
		{name: "missing learner", doc: `{}`, wantValid: false},
		{name: "wrong type", doc: `{"learner":{"region":7}}`, wantValid: false, wantField: "learner.region"},
		{name: "below minimum", doc: `{"learner":{"weeklyMinutes":-5}}`, wantValid: false, wantField: "learner.weeklyMinutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateJSON([]byte(tt.doc), learnerSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.NotEmpty(t, result.GetErrorMessages())
			}
			if tt.wantField != "" {
				assert.True(t, result.HasErrors(tt.wantField), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestValidateInputWithEmptySchema(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"anything": 1}, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateInputMap(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"learner": "nope"}, learnerSchema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("learner"))
}

func TestCompileSchema(t *testing.T) {
	require.NoError(t, CompileSchema(learnerSchema))
	assert.Error(t, CompileSchema(map[string]interface{}{"type": 12}))
}
