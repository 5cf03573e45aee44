package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Mutation outcomes.
const (
	OutcomeApplied = "applied"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

var (
	// StoreMutations counts store mutations by operation and outcome.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_store_mutations_total",
		Help: "Application store mutations by operation and outcome",
	}, []string{"op", "outcome"})

	// PersistDuration tracks how long a full snapshot write takes.
	PersistDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracker_store_persist_duration_seconds",
		Help:    "Duration of full snapshot writes to the key-value backend",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	// SnapshotDecodeFailures counts persisted payloads discarded at load.
	SnapshotDecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_store_snapshot_decode_failures_total",
		Help: "Persisted snapshots that failed to decode and were treated as empty",
	})

	// ViewSize reports the current number of applications per view.
	ViewSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tracker_store_applications",
		Help: "Applications currently tracked, by view",
	}, []string{"view"})
)

// ObserveMutation increments the mutation counter.
func ObserveMutation(op, outcome string) {
	StoreMutations.WithLabelValues(op, outcome).Inc()
}

// SetViewSizes publishes the size of each view.
func SetViewSizes(all, active, completed int) {
	ViewSize.WithLabelValues("all").Set(float64(all))
	ViewSize.WithLabelValues("active").Set(float64(active))
	ViewSize.WithLabelValues("completed").Set(float64(completed))
}

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
