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
		[]string{"task_type", "status"},
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

	// DialogActions counts dispatcher responses by intent and dialog action type.
	DialogActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_actions_total",
			Help: "Dialog actions returned by the intent dispatcher",
		},
		[]string{"intent", "action"},
	)

	QueueMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_messages_total",
			Help: "Request queue operations by result",
		},
		[]string{"operation", "result"},
	)

	RecommendationsFetched = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendations_fetched",
			Help:    "Number of recommendations produced per request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"cuisine"},
	)
)
