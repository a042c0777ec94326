// internal/workers/analytics/record-evaluation/handler.go
package recordevaluation

import (
	"context"
	"encoding/json"
	"time"

	"veriportal-engine/internal/analytics"
	"veriportal-engine/internal/common/errors"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/internal/common/metrics"
	"veriportal-engine/internal/common/observability"
	"veriportal-engine/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-evaluation"
)

type Handler struct {
	config *Config
	sink   analytics.Sink
	obs    *observability.Observability
	errors *errors.ErrorHandler
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, sink analytics.Sink, obs *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		sink:   sink,
		obs:    obs,
		errors: errors.NewErrorHandler(l),
		logger: l,
		now:    time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	ctx, span := h.obs.StartSpan(ctx, TaskType, job.Key)
	defer span.End()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
		"traceId":     observability.TraceID(ctx),
		"retries":     job.Retries,
	})

	input, err := h.parseInput([]byte(job.Variables))
	if err != nil {
		h.fail(ctx, client, job, startTime, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, startTime, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "completed")
}

func (h *Handler) parseInput(raw []byte) (*Input, error) {
	result, err := validation.ValidateJSON(raw, h.config.InputSchema)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !result.Valid {
		return nil, errors.NewInputValidationFailedError(result.GetErrorMessages())
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

// Execute writes the snapshot to every configured sink. Writes are idempotent per record ID, so
// a retried job may safely rewrite sinks that already succeeded.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	rec, err := analytics.NewRecord(input.SubjectType, input.Evaluation, h.now())
	if err != nil {
		return nil, errors.NewInputValidationFailedError([]string{err.Error()})
	}

	if err := h.sink.Record(ctx, rec); err != nil {
		h.logger.Warn("analytics write failed", map[string]interface{}{
			"recordId":  rec.ID,
			"subjectId": rec.SubjectID,
			"error":     err.Error(),
		})
		if errors.CodeOf(err) == errors.ErrCodeInternal {
			return nil, errors.NewAnalyticsWriteFailedError(h.sink.Name(), err)
		}
		return nil, err
	}

	h.logger.Info("evaluation recorded", map[string]interface{}{
		"recordId":    rec.ID,
		"subjectId":   rec.SubjectID,
		"subjectType": rec.SubjectType,
		"tier":        rec.Tier,
	})

	return &Output{
		RecordID:   rec.ID,
		Sinks:      sinkNames(h.sink),
		RecordedAt: rec.RecordedAt.Format(time.RFC3339),
	}, nil
}

func sinkNames(s analytics.Sink) []string {
	if multi, ok := s.(interface{ Names() []string }); ok {
		return multi.Names()
	}
	return []string{s.Name()}
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, startTime time.Time, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(startTime), "failed")
	h.obs.SpanError(ctx, err)
	h.errors.HandleJobError(ctx, client, job, err)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
