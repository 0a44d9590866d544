// Package metrics provides the prometheus-backed implementation of the
// checker's Stats interface plus shared histogram buckets.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// BatchDurationBuckets covers whole-batch runtimes, which are dominated by
// pacing delays and provider latency.
var BatchDurationBuckets = []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300} //nolint: gochecknoglobals

// CheckerStats implements the checker's Stats interface on prometheus
// collectors. All collectors are safe for concurrent use.
type CheckerStats struct {
	outcomes      *prometheus.CounterVec
	batchSize     prometheus.Histogram
	batchDuration prometheus.Histogram
}

// NewCheckerStats registers the checker collectors on reg and returns the
// Stats implementation. Passing prometheus.DefaultRegisterer wires the
// metrics into the default /metrics endpoint.
func NewCheckerStats(reg prometheus.Registerer) *CheckerStats {
	s := &CheckerStats{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checker_credentials_total",
			Help: "Checked credentials by outcome classification.",
		}, []string{"outcome"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "checker_batch_size",
			Help:    "Number of credentials per batch after normalization.",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "checker_batch_duration_seconds",
			Help:    "Wall-clock duration of whole batch runs.",
			Buckets: BatchDurationBuckets,
		}),
	}
	reg.MustRegister(s.outcomes, s.batchSize, s.batchDuration)

	return s
}

// ObserveOutcome counts one finished credential by its classification
// ("Valid" or an error kind name).
func (s *CheckerStats) ObserveOutcome(outcome string) {
	s.outcomes.WithLabelValues(outcome).Inc()
}

// ObserveBatch records the size and duration of one finished batch.
func (s *CheckerStats) ObserveBatch(size int, duration time.Duration) {
	s.batchSize.Observe(float64(size))
	s.batchDuration.Observe(duration.Seconds())
}
