// Package metrics provides Prometheus metrics for the bptree service stack.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics exported for a running tree.
type Metrics struct {
	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Structural metrics (rebalancing)
	SplitsTotal  prometheus.Counter
	MergesTotal  prometheus.Counter
	BorrowsTotal prometheus.Counter

	// Tree shape gauges
	TreeSize   prometheus.Gauge
	TreeHeight prometheus.Gauge

	// Server metrics
	ServerUptimeSeconds prometheus.Gauge
	ServerStartTime     time.Time
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	m.OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bptree_operations_total",
			Help: "Total number of tree operations by kind and outcome",
		},
		[]string{"operation", "status"},
	)

	m.OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bptree_operation_duration_seconds",
			Help:    "Duration of tree operations in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
		},
		[]string{"operation"},
	)

	m.SplitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bptree_splits_total",
			Help: "Total number of node splits performed during inserts",
		},
	)

	m.MergesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bptree_merges_total",
			Help: "Total number of node merges performed during deletes",
		},
	)

	m.BorrowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bptree_borrows_total",
			Help: "Total number of sibling borrows performed during deletes",
		},
	)

	m.TreeSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bptree_size",
			Help: "Current number of leaf entries in the tree",
		},
	)

	m.TreeHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bptree_height",
			Help: "Current height of the tree",
		},
	)

	m.ServerUptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bptree_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
	)

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.ServerUptimeSeconds.Set(time.Since(m.ServerStartTime).Seconds())
	}
}

// RecordOperation records a completed Put/Get/Remove/Range with its status.
func (m *Metrics) RecordOperation(operation, status string, duration time.Duration) {
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateShape updates the tree-shape gauges after a mutation.
func (m *Metrics) UpdateShape(size, height int) {
	m.TreeSize.Set(float64(size))
	m.TreeHeight.Set(float64(height))
}

// AddStructuralEvents advances the split/merge/borrow counters by the
// given deltas, observed between two calls to Tree.StructuralCounts.
func (m *Metrics) AddStructuralEvents(splits, merges, borrows int) {
	if splits > 0 {
		m.SplitsTotal.Add(float64(splits))
	}
	if merges > 0 {
		m.MergesTotal.Add(float64(merges))
	}
	if borrows > 0 {
		m.BorrowsTotal.Add(float64(borrows))
	}
}
