// Package observability provides metrics and tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreSaveLatency records how long flushing the store file takes.
	StoreSaveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "driftline_store_save_latency_seconds",
		Help:    "Latency of store file writes in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// FeedCandidates records the size of the unpaginated candidate set per listing.
	FeedCandidates = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "driftline_feed_candidates",
		Help:    "Number of candidate items selected before pagination",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"listing"})

	// StaleCursorsTotal counts cursors that no longer matched any candidate
	// and silently restarted the listing from the top.
	StaleCursorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driftline_stale_cursors_total",
		Help: "Total number of stale pagination cursors that fell back to the first page",
	}, []string{"listing"})

	// ReactionTogglesTotal counts reaction upserts by outcome.
	ReactionTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driftline_reaction_toggles_total",
		Help: "Total reaction toggle operations by outcome",
	}, []string{"outcome"})
)

// ObserveStoreSave records the latency of a store file write.
func ObserveStoreSave(start time.Time) {
	StoreSaveLatency.Observe(time.Since(start).Seconds())
}

// ObserveFeedSelection records the candidate count for a listing type.
func ObserveFeedSelection(listing string, candidates int) {
	FeedCandidates.WithLabelValues(listing).Observe(float64(candidates))
}

// CountStaleCursor counts a stale-cursor fallback for a listing type.
func CountStaleCursor(listing string) {
	StaleCursorsTotal.WithLabelValues(listing).Inc()
}
