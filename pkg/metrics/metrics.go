package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	CrawlStepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crawl_steps_total",
			Help: "Total number of crawl stepper increments performed.",
		},
	)

	PagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pages_fetched_total",
			Help: "Total number of page fetch attempts.",
		},
		[]string{"phase", "outcome"}, // phase: crawl, audit
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "Duration of page fetches.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 6, 8},
		},
		[]string{"phase"},
	)

	AuditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audits_total",
			Help: "Total number of audit tasks driven to a terminal state.",
		},
		[]string{"status"}, // complete, error
	)

	AuditScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "audit_score",
			Help:    "Distribution of SEO scores for completed audits.",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)
