// Package metrics holds the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FeedbackSubmissions counts accepted public feedback submissions by type.
var FeedbackSubmissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "opina_feedback_submissions_total",
		Help: "Accepted public feedback submissions, labelled by feedback type.",
	},
	[]string{"type"},
)

// ItemSubmissions counts admin suggestion/complaint submissions by category.
var ItemSubmissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "opina_item_submissions_total",
		Help: "Submitted feedback items, labelled by category.",
	},
	[]string{"category"},
)
