// internal/workers/compliance/evaluate-business/handler.go
package evaluatebusiness

import (
	"context"
	"encoding/json"
	"time"

	"veriportal-engine/internal/common/errors"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/internal/common/metrics"
	"veriportal-engine/internal/common/observability"
	"veriportal-engine/internal/common/validation"
	"veriportal-engine/internal/engine"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-business"
)

type Handler struct {
	config *Config
	engine *engine.Engine
	obs    *observability.Observability
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, eng *engine.Engine, obs *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		engine: eng,
		obs:    obs,
		errors: errors.NewErrorHandler(l),
		logger: l,
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
	})

	defer func() {
		if r := recover(); r != nil {
			h.fail(ctx, client, job, startTime, errors.FromPanic(r))
		}
	}()

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

// Execute evaluates the business. Engine errors keep their codes so the process can branch on them.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewEvaluationFailedError(err)
	}

	var opts []engine.EvaluateOption
	if input.Weights != nil {
		opts = append(opts, engine.WithWeights(input.Weights))
	}
	if input.Profile != nil {
		opts = append(opts, engine.WithProfile(*input.Profile))
	}

	started := time.Now()
	eval, err := h.engine.EvaluateBusiness(input.Business, input.Evidence, opts...)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeInternal {
			return nil, errors.NewEvaluationFailedError(err)
		}
		return nil, err
	}

	tier := string(eval.Overall.Tier)
	metrics.EngineEvaluations.WithLabelValues("business", tier).Inc()
	metrics.EngineEvaluationDuration.WithLabelValues("business").Observe(time.Since(started).Seconds())
	for _, risk := range eval.Risks {
		h.obs.RecordRisk(ctx, string(risk.Category), string(risk.Impact))
	}

	h.logger.Info("business evaluated", map[string]interface{}{
		"businessId": input.Business.BusinessID,
		"region":     input.Business.Region,
		"overall":    eval.Overall.Value,
		"tier":       tier,
		"risks":      len(eval.Risks),
	})

	return &Output{
		Evaluation:        eval,
		OverallScore:      eval.Overall.Value,
		Tier:              tier,
		RiskCount:         len(eval.Risks),
		RequiresAttention: h.requiresAttention(tier),
	}, nil
}

func (h *Handler) requiresAttention(tier string) bool {
	for _, t := range h.config.AttentionTiers {
		if t == tier {
			return true
		}
	}
	return false
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
