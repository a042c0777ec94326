// internal/workers/compliance/evaluate-business/handler_test.go
package evaluatebusiness

import (
	"context"
	"testing"
	"time"

	"veriportal-engine/internal/common/errors"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/internal/engine"
	"veriportal-engine/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var testTime = time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

func createTestConfig(t *testing.T) *Config {
	reg, err := registry.Default()
	require.NoError(t, err)

	config := DefaultConfig()
	config.InputSchema = reg.InputSchema(TaskType)
	return config
}

func createTestHandler(t *testing.T) *Handler {
	eng, err := engine.New(nil, engine.WithClock(engine.FixedClock{T: testTime}))
	require.NoError(t, err)
	return NewHandler(createTestConfig(t), eng, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name              string
		input             *Input
		expectedScore     int
		expectedTier      string
		requiresAttention bool
		validate          func(t *testing.T, output *Output)
	}{
		{
			name: "south SME at baselines",
			input: &Input{Business: engine.BusinessContext{
				BusinessID: "sme-001",
				Size:       engine.SizeMedium,
				Region:     engine.RegionSouth,
				Maturity:   engine.MaturityBeginner,
			}},
			expectedScore: 60,
			expectedTier:  "medium",
			validate: func(t *testing.T, output *Output) {
				assert.Equal(t, "sme-001", output.Evaluation.SubjectID)
				assert.Equal(t, len(output.Evaluation.Risks), output.RiskCount)
				assert.Equal(t, engine.RegisterCollaborative, output.Evaluation.Presentation.Tone)
			},
		},
		{
			name: "evidence raises legal framework",
			input: &Input{
				Business: engine.BusinessContext{BusinessID: "biz-2", Region: engine.RegionCentral},
				Evidence: engine.EvidenceMap{
					engine.CategoryLegalFramework: {CompletedItems: []string{"dpo-appointed", "consent-mechanism"}},
				},
			},
			expectedScore: 64,
			expectedTier:  "medium",
			validate: func(t *testing.T, output *Output) {
				assert.Equal(t, 77, output.Evaluation.Categories[0].Value)
				assert.True(t, output.Evaluation.Categories[0].EvidenceProvided)
			},
		},
		{
			name: "weights restricted to weak categories",
			input: &Input{
				Business: engine.BusinessContext{BusinessID: "biz-3", Region: engine.RegionSouth},
				Weights: map[engine.Category]float64{
					engine.CategoryLegalFramework:    1,
					engine.CategoryDataGovernance:    0,
					engine.CategorySecurityPosture:   0,
					engine.CategoryPolicyMaturity:    0,
					engine.CategoryCulturalAlignment: 0,
					engine.CategoryRegulatoryFit:     1,
				},
			},
			expectedScore:     55,
			expectedTier:      "high",
			requiresAttention: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)

			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			require.NotNil(t, output)

			assert.Equal(t, tt.expectedScore, output.OverallScore)
			assert.Equal(t, tt.expectedTier, output.Tier)
			assert.Equal(t, tt.requiresAttention, output.RequiresAttention)
			if tt.validate != nil {
				tt.validate(t, output)
			}
		})
	}
}

func TestHandler_Execute_ProfileOverride(t *testing.T) {
	handler := createTestHandler(t)
	profile := engine.CulturalProfile{
		Region:              engine.RegionNorth,
		CommunicationStyle:  engine.StyleFormal,
		ThresholdMultiplier: 1,
		ValidationLevel:     engine.ValidationStrict,
		ContentDepth:        engine.DepthComprehensive,
	}

	output, err := handler.Execute(context.Background(), &Input{
		Business: engine.BusinessContext{Region: engine.RegionSouth},
		Profile:  &profile,
	})
	require.NoError(t, err)
	assert.Equal(t, engine.RegionNorth, output.Evaluation.Presentation.Region)
	assert.Equal(t, engine.RegisterFormal, output.Evaluation.Presentation.Tone)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_EngineErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
		code  errors.ErrorCode
	}{
		{"missing region", &Input{Business: engine.BusinessContext{Size: engine.SizeSmall}}, errors.ErrCodeIncompleteContext},
		{"unknown maturity", &Input{Business: engine.BusinessContext{Region: engine.RegionNorth, Maturity: "expert"}}, errors.ErrCodeInvalidContext},
		{"unknown evidence category", &Input{
			Business: engine.BusinessContext{Region: engine.RegionNorth},
			Evidence: engine.EvidenceMap{"marketing": {}},
		}, errors.ErrCodeInvalidCategory},
		{"negative weight", &Input{
			Business: engine.BusinessContext{Region: engine.RegionNorth},
			Weights:  map[engine.Category]float64{engine.CategoryLegalFramework: -1},
		}, errors.ErrCodeInvalidWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createTestHandler(t).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, output)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := createTestHandler(t).Execute(ctx, &Input{Business: engine.BusinessContext{Region: engine.RegionNorth}})
	assert.Equal(t, errors.ErrCodeEvaluationFailed, errors.CodeOf(err))
}

func TestHandler_ParseInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code errors.ErrorCode
	}{
		{"malformed json", `{"business":`, errors.ErrCodeParseError},
		{"missing business", `{"evidence":{}}`, errors.ErrCodeInputValidationFailed},
		{"region not a string", `{"business":{"region":3}}`, errors.ErrCodeInputValidationFailed},
		{"previous score above range", `{"business":{"region":"north"},"evidence":{"legal-framework":{"previousScore":140}}}`, errors.ErrCodeInputValidationFailed},
		{"weight not a number", `{"business":{"region":"north"},"weights":{"legal-framework":"high"}}`, errors.ErrCodeInputValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createTestHandler(t).parseInput([]byte(tt.raw))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestHandler_ParseInput_Valid(t *testing.T) {
	raw := `{
		"business": {"businessId": "biz-9", "region": "south", "size": "small", "objectives": ["bảo mật"]},
		"evidence": {"security-posture": {"completedItems": ["access-control"], "answers": {"security-audit": 80}}},
		"weights": {"security-posture": 2}
	}`

	input, err := createTestHandler(t).parseInput([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, engine.RegionSouth, input.Business.Region)
	assert.Equal(t, []string{"access-control"}, input.Evidence[engine.CategorySecurityPosture].CompletedItems)
	assert.Equal(t, 80.0, input.Evidence[engine.CategorySecurityPosture].Answers["security-audit"])
	assert.Equal(t, 2.0, input.Weights[engine.CategorySecurityPosture])
}
