// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "addressdb"

var (
	builderFilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "files_total",
		Help:      "Count of decoded block files.",
	}, []string{"network", "status"})

	builderFileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "file_duration_seconds",
		Help:      "Duration of decoding a single block file.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"network", "status"})

	builderBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "blocks_total",
		Help:      "Count of decoded blocks by date window outcome.",
	}, []string{"network", "window"})

	builderAddressesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "addresses_total",
		Help:      "Count of recognized addresses by insert outcome.",
	}, []string{"network", "result"})

	builderRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "runs_total",
		Help:      "Count of build runs by failure kind.",
	}, []string{"network", "kind"})

	builderRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "run_duration_seconds",
		Help:      "Duration of a build run.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1s..3d
	}, []string{"network", "kind"})
)

// Builder tracks metrics for the address set builder.
type Builder struct {
	network model.Network
}

// NewBuilder constructs a Builder collector for network.
func NewBuilder(network model.Network) *Builder {
	if network == "" {
		network = "unknown"
	}
	return &Builder{network: network}
}

// ObserveFile records the outcome of decoding one block file.
func (m Builder) ObserveFile(err error, blocks, filtered int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	builderFilesTotal.WithLabelValues(string(m.network), status).Inc()
	builderFileDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	builderBlocksTotal.WithLabelValues(string(m.network), "in").Add(float64(blocks - filtered))
	builderBlocksTotal.WithLabelValues(string(m.network), "out").Add(float64(filtered))
}

// ObserveInsert records how many addresses of a file were new and how many already present.
func (m Builder) ObserveInsert(inserted, duplicates int) {
	builderAddressesTotal.WithLabelValues(string(m.network), "inserted").Add(float64(inserted))
	builderAddressesTotal.WithLabelValues(string(m.network), "duplicate").Add(float64(duplicates))
}

// ObserveRun records the end of a build run.
func (m Builder) ObserveRun(err error, started time.Time) {
	kind := model.ErrorKind(err)
	builderRunsTotal.WithLabelValues(string(m.network), kind).Inc()
	builderRunDuration.WithLabelValues(string(m.network), kind).Observe(time.Since(started).Seconds())
}
