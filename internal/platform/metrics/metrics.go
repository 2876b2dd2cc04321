package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
)

// Metrics for monitoring
var (
	SubjectFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booktitles_subject_fetch_total",
		Help: "The total number of subject fetches by outcome",
	}, []string{"outcome"})

	SubjectFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "booktitles_subject_fetch_seconds",
		Help:    "Time taken to fetch a subject from the remote source",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms doubling up to ~25s
	})

	SubjectTitles = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "booktitles_subject_titles",
		Help:    "Number of titles extracted per lookup",
		Buckets: prometheus.LinearBuckets(0, 5, 10),
	})

	LookupLogFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booktitles_lookup_log_failures_total",
		Help: "The total number of lookup log writes that failed",
	})
)
