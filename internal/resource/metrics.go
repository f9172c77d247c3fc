package resource

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeLoaded    = "loaded"
	outcomeFailed    = "failed"
	outcomeDiscarded = "discarded"
)

// Prometheus metrics
var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "octofit_view_fetch_total",
		Help: "Total number of view fetches by resource and outcome",
	}, []string{"resource", "outcome"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "octofit_view_fetch_duration_seconds",
		Help:    "Duration of view fetches until the view settled",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})

	viewsMounted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "octofit_views_mounted",
		Help: "Number of views currently waiting on their fetch",
	})
)
