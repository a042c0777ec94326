// internal/workers/communication/notify-risk/handler.go
package notifyrisk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	awsclients "veriportal-engine/internal/common/aws"
	"veriportal-engine/internal/common/errors"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/internal/common/metrics"
	"veriportal-engine/internal/common/observability"
	"veriportal-engine/internal/common/validation"
	"veriportal-engine/internal/engine"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-risk"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Handler struct {
	config    *Config
	sesClient awsclients.SESService
	snsClient awsclients.SNSService
	obs       *observability.Observability
	errors    *errors.ErrorHandler
	logger    logger.Logger
	now       func() time.Time
}

// NewHandler wires the alert channels. Either client may be nil when its channel is disabled.
func NewHandler(config *Config, sesClient awsclients.SESService, snsClient awsclients.SNSService, obs *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		sesClient: sesClient,
		snsClient: snsClient,
		obs:       obs,
		errors:    errors.NewErrorHandler(l),
		logger:    l,
		now:       time.Now,
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

var notificationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://veriportal.vn/notifications"))

// notificationID is stable across job retries for the same evaluation, so receivers can drop
// duplicates.
func notificationID(eval engine.ComplianceEvaluation) string {
	return uuid.NewSHA1(notificationNamespace, []byte(strings.Join([]string{
		eval.SubjectID,
		string(eval.Overall.Tier),
		eval.Overall.LastCalculated.UTC().Format(time.RFC3339Nano),
	}, "|"))).String()
}

// Execute emails the configured recipients when the tier is one of EmailTiers and sends an SMS
// only for critical evaluations.
//
// A failure before anything was delivered is returned as a retryable error. Once a delivery has
// gone out the remaining ones are attempted and the job completes as partial with the failed
// deliveries listed, so a retry never repeats an alert.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{
		NotificationID: notificationID(input.Evaluation),
		Channels:       []string{},
	}

	emailOn := h.config.EmailEnabled && h.sesClient != nil
	smsOn := h.config.SMSEnabled && h.snsClient != nil
	if !emailOn && !smsOn {
		output.Status = StatusDisabled
		return output, nil
	}

	tier := input.Evaluation.Overall.Tier
	msg := buildMessage(input.Evaluation, input.Language)

	delivered := 0
	var firstErr error
	failed := func(channel, target string, err error) error {
		sendErr := errors.NewNotificationSendFailedError(channel, err)
		if delivered == 0 {
			return sendErr
		}
		if firstErr == nil {
			firstErr = sendErr
		}
		output.Failed = append(output.Failed, channel+":"+target)
		return nil
	}

	recipients := pick(input.Recipients, h.config.Recipients)
	if emailOn && h.config.emailsTier(string(tier)) && len(recipients) > 0 {
		if err := h.sendEmail(ctx, output.NotificationID, recipients, msg); err != nil {
			if retry := failed(ChannelEmail, strings.Join(recipients, ","), err); retry != nil {
				return nil, retry
			}
		} else {
			delivered++
			metrics.NotificationsSent.WithLabelValues(ChannelEmail).Inc()
			output.Channels = append(output.Channels, ChannelEmail)
		}
	}

	phones := pick(input.PhoneNumbers, h.config.PhoneNumbers)
	if smsOn && tier == engine.RiskCritical && len(phones) > 0 {
		texted := 0
		for _, phone := range phones {
			if err := h.sendSMS(ctx, phone, msg.SMS); err != nil {
				if retry := failed(ChannelSMS, phone, err); retry != nil {
					return nil, retry
				}
				continue
			}
			delivered++
			texted++
		}
		if texted > 0 {
			metrics.NotificationsSent.WithLabelValues(ChannelSMS).Inc()
			output.Channels = append(output.Channels, ChannelSMS)
		}
	}

	if len(output.Channels) == 0 {
		output.Status = StatusSkipped
		h.logger.Debug("no alert for tier", map[string]interface{}{
			"subjectId": input.Evaluation.SubjectID,
			"tier":      tier,
		})
		return output, nil
	}

	output.SentAt = h.now().UTC().Format(time.RFC3339)
	if firstErr != nil {
		output.Status = StatusPartial
		h.logger.Warn("risk alert partially delivered", map[string]interface{}{
			"notificationId": output.NotificationID,
			"subjectId":      input.Evaluation.SubjectID,
			"channels":       output.Channels,
			"failed":         output.Failed,
			"error":          firstErr.Error(),
		})
		return output, nil
	}

	output.Status = StatusSent
	h.logger.Info("risk alert sent", map[string]interface{}{
		"notificationId": output.NotificationID,
		"subjectId":      input.Evaluation.SubjectID,
		"tier":           tier,
		"channels":       output.Channels,
	})
	return output, nil
}

func pick(override, fallback []string) []string {
	if len(override) > 0 {
		return override
	}
	return fallback
}

func (h *Handler) sendEmail(ctx context.Context, id string, to []string, msg message) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: to,
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(h.config.FromEmail),
		Tags: []sestypes.MessageTag{
			{Name: aws.String("notification-id"), Value: aws.String(id)},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

func (h *Handler) sendSMS(ctx context.Context, to, text string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(text),
	}
	if h.config.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(h.config.SenderID),
			},
		}
	}
	if _, err := h.snsClient.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish to %s: %w", to, err)
	}
	return nil
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
