// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// EngineEvaluations counts finished evaluations; kind is business or learner.
	EngineEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_evaluations_total",
			Help: "Total number of evaluations produced by the scoring engine",
		},
		[]string{"kind", "tier"},
	)

	EngineEvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_evaluation_duration_seconds",
			Help:    "Duration of a scoring engine evaluation in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
		[]string{"kind"},
	)

	AnalyticsWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_writes_total",
			Help: "Evaluation snapshots written per analytics sink",
		},
		[]string{"sink", "status"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_notifications_sent_total",
			Help: "Risk notifications sent per channel",
		},
		[]string{"channel"},
	)
)
