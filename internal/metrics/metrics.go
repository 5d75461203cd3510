package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch outcomes used as the "outcome" label.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// UnknownAction is the "action" label of not-found dispatches. Requested
// names are caller-controlled, so they never become label values.
const UnknownAction = "unknown"

var (
	ActionsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "actionserver_webhook_requests_total",
		Help: "Total number of action dispatches, labelled by resolved action and outcome.",
	}, []string{"action", "outcome"})

	ActionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "actionserver_action_duration_seconds",
		Help:    "Duration of action handler executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	RegisteredActions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "actionserver_registered_actions",
		Help: "Number of actions currently registered.",
	})
)
