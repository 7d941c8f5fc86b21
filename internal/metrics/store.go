package metrics

import (
	"time"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeCheckpointsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "checkpoints_total",
		Help:      "Count of database checkpoints.",
	}, []string{"network", "status"})

	storeCheckpointDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "checkpoint_duration_seconds",
		Help:      "Duration of database checkpoints.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	storeCheckpointPages = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "checkpoint_pages",
		Help:      "Number of 64 KiB slot pages written per checkpoint.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	}, []string{"network"})

	storeEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "entries",
		Help:      "Number of stored address fingerprints.",
	}, []string{"network"})

	storeFill = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "fill_ratio",
		Help:      "Stored entries relative to the capacity limit.",
	}, []string{"network"})
)

// Store tracks metrics for the address database file.
type Store struct {
	network model.Network
}

// NewStore constructs a Store collector for network.
func NewStore(network model.Network) *Store {
	if network == "" {
		network = "unknown"
	}
	return &Store{network: network}
}

// ObserveCheckpoint records a checkpoint outcome, duration and size.
func (m Store) ObserveCheckpoint(pages int, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	storeCheckpointsTotal.WithLabelValues(string(m.network), status).Inc()
	storeCheckpointDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	storeCheckpointPages.WithLabelValues(string(m.network)).Observe(float64(pages))
}

// ObserveEntries records the current entry count against the capacity limit.
func (m Store) ObserveEntries(count, limit uint64) {
	storeEntries.WithLabelValues(string(m.network)).Set(float64(count))
	if limit > 0 {
		storeFill.WithLabelValues(string(m.network)).Set(float64(count) / float64(limit))
	}
}
