// Package instrumentation exposes the collector's Prometheus metrics.
package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchDuration observes how long each book fetch takes, per book.
	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marketfeed",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of sportsbook fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"book"})

	// EventsCollected counts canonical events produced per book and sport.
	EventsCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketfeed",
		Name:      "events_collected_total",
		Help:      "Canonical market events produced by transforms.",
	}, []string{"book", "sport"})

	// RecordsSkipped counts upstream records dropped during transform.
	RecordsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketfeed",
		Name:      "records_skipped_total",
		Help:      "Upstream records dropped as unparseable.",
	}, []string{"book", "sport"})

	// BookFailures counts per-book fetch and decode failures.
	BookFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketfeed",
		Name:      "book_failures_total",
		Help:      "Failed book collection attempts.",
	}, []string{"book", "reason"})
)
