package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments of the clamm module
type Metrics struct {
	SwapsTotal              *prometheus.CounterVec
	SwapLatency             prometheus.Histogram
	ProvidesTotal           *prometheus.CounterVec
	WithdrawsTotal          *prometheus.CounterVec
	RepegsTotal             prometheus.Counter
	RepegsSkipped           prometheus.Counter
	PoolsTotal              prometheus.Gauge
	SolverIterationFailures prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers the module metrics (singleton)
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "offer_denom", "status"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency",
					Buckets:   prometheus.DefBuckets,
				},
			),
			ProvidesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "provides_total",
					Help:      "Total number of liquidity provides",
				},
				[]string{"pool_id", "status"},
			),
			WithdrawsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "withdraws_total",
					Help:      "Total number of liquidity withdrawals",
				},
				[]string{"pool_id", "status"},
			),
			RepegsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "repegs_total",
					Help:      "Total number of committed price-scale re-pegs",
				},
			),
			RepegsSkipped: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "repegs_skipped_total",
					Help:      "Re-peg attempts rejected by the profit-preservation check",
				},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "pools_total",
					Help:      "Number of pools in state",
				},
			),
			SolverIterationFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "helix",
					Subsystem: "clamm",
					Name:      "solver_failures_total",
					Help:      "Newton solver convergence failures; should stay at zero",
				},
			),
		}
	})
	return metrics
}
