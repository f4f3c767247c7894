// Package metrics defines and registers the custom Prometheus metrics of the
// SocialSphere API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register on the default registry through
// promauto when the package is imported.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "socialsphere"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created" or "failed"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// SigninsTotal counts sign-in attempts.
// Label:
//   - result: "ok", "invalid", "unverified", "blocked" or "error"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// MessagesSentTotal counts direct messages persisted.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent.",
	},
)

// PostsCreatedTotal counts created posts.
// Label:
//   - with_image: "true" or "false"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
	[]string{"with_image"},
)

// LikeTogglesTotal counts like toggles.
// Label:
//   - action: "like" or "unlike"
var LikeTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "like_toggles_total",
		Help:      "Total number of like toggles, by resulting action.",
	},
	[]string{"action"},
)

// JobApplicationsTotal counts accepted job applications.
var JobApplicationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_applications_total",
		Help:      "Total number of job applications recorded.",
	},
)

// UploadsTotal counts stored uploads.
// Label:
//   - kind: "profile-picture", "resume" or "post-image"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files accepted, by upload kind.",
	},
	[]string{"kind"},
)

// ── Task queue metrics ────────────────────────────────────────────────────────

// TasksQueued tracks the number of tasks waiting or running, per task name.
var TasksQueued = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tasks_queued",
		Help:      "Current number of background tasks queued or running.",
	},
	[]string{"task"},
)

// TaskDuration measures how long a background task runs.
// Labels:
//   - task: task name (e.g. "storage.remove")
//   - status: "ok" or "error"
var TaskDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Duration of background task execution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"task", "status"},
)

// TaskObserver feeds the task queue metrics from dispatcher notifications.
type TaskObserver struct{}

func (TaskObserver) Queued(name string) {
	TasksQueued.WithLabelValues(name).Inc()
}

func (TaskObserver) Done(name string, err error, elapsed time.Duration) {
	TasksQueued.WithLabelValues(name).Dec()
	status := "ok"
	if err != nil {
		status = "error"
	}
	TaskDuration.WithLabelValues(name, status).Observe(elapsed.Seconds())
}
