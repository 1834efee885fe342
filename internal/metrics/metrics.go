package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes used as the "outcome" label.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalid     = "invalid"
	OutcomeDuplicate   = "duplicate"
	OutcomeNotEligible = "not_eligible"
	OutcomeError       = "error"
)

// Prometheus metrics for submissions and HTTP traffic.
var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Public submissions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ModerationActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_actions_total",
			Help: "Admin moderation actions by kind and action",
		},
		[]string{"kind", "action"},
	)

	NotificationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Owner notification emails that could not be sent",
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// Register registers all metrics with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		SubmissionsTotal,
		ModerationActionsTotal,
		NotificationFailuresTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
