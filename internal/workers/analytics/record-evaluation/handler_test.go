package recordevaluation

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"veriportal-engine/internal/analytics"
	"veriportal-engine/internal/common/errors"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/pkg/registry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEvaluation = `{
	"subjectId": "biz-001",
	"overall": {"value": 48, "confidence": 33, "tier": "high", "lastCalculated": "2025-07-01T09:30:00Z"},
	"categories": [],
	"risks": [],
	"recommendations": []
}`

func createTestHandler(t *testing.T, sink analytics.Sink) *Handler {
	reg, err := registry.Default()
	require.NoError(t, err)

	config := DefaultConfig()
	config.InputSchema = reg.InputSchema(TaskType)
	return NewHandler(config, sink, nil, logger.NewTestLogger(t))
}

func TestHandler_Execute_WritesPostgresAndRedis(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO compliance_evaluations")).
		WithArgs(sqlmock.AnyArg(), "biz-001", "business", 48, "high", 33, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sink := analytics.NewMultiSink(
		analytics.NewPostgresSink(db),
		analytics.NewRedisSink(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour),
	)
	handler := createTestHandler(t, sink)

	output, err := handler.Execute(context.Background(), &Input{
		SubjectType: analytics.SubjectBusiness,
		Evaluation:  json.RawMessage(sampleEvaluation),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, output.RecordID)
	assert.Equal(t, []string{"postgres", "redis"}, output.Sinks)
	assert.Equal(t, "2025-07-01T09:30:00Z", output.RecordedAt)
	assert.True(t, mr.Exists(analytics.LatestKey("business", "biz-001")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingSink struct{}

func (failingSink) Name() string { return "elasticsearch" }

func (failingSink) Record(context.Context, analytics.Record) error {
	return stderrors.New("cluster unavailable")
}

func TestHandler_Execute_SinkFailureIsRetryable(t *testing.T) {
	handler := createTestHandler(t, failingSink{})

	_, err := handler.Execute(context.Background(), &Input{
		SubjectType: analytics.SubjectBusiness,
		Evaluation:  json.RawMessage(sampleEvaluation),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAnalyticsWriteFailed, errors.CodeOf(err))
	assert.True(t, errors.Normalize(err).Retryable)
	assert.Equal(t, 3, errors.ConvertToBPMNError(errors.Normalize(err)).Retries)
}

func TestHandler_Execute_UnknownSubjectType(t *testing.T) {
	_, err := createTestHandler(t, failingSink{}).Execute(context.Background(), &Input{
		SubjectType: "vendor",
		Evaluation:  json.RawMessage(sampleEvaluation),
	})
	assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.CodeOf(err))
}

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t, failingSink{})

	input, err := h.parseInput([]byte(`{"subjectType":"learner","evaluation":{"subjectId":"l-1","overall":{"value":70,"tier":"medium"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "learner", input.SubjectType)
	assert.JSONEq(t, `{"subjectId":"l-1","overall":{"value":70,"tier":"medium"}}`, string(input.Evaluation))

	tests := []struct {
		name string
		raw  string
	}{
		{"missing evaluation", `{"subjectType":"business"}`},
		{"bad subject type", `{"subjectType":"vendor","evaluation":{"subjectId":"a","overall":{"value":1,"tier":"low"}}}`},
		{"missing subject id", `{"subjectType":"business","evaluation":{"overall":{"value":1,"tier":"low"}}}`},
		{"tier out of enum", `{"subjectType":"business","evaluation":{"subjectId":"a","overall":{"value":1,"tier":"severe"}}}`},
		{"score out of range", `{"subjectType":"business","evaluation":{"subjectId":"a","overall":{"value":101,"tier":"low"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.parseInput([]byte(tt.raw))
			assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.CodeOf(err))
		})
	}
}
