package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCRequestsTotal counts upstream RPC calls by method and outcome
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burntracker_rpc_requests_total",
			Help: "Total number of upstream RPC requests",
		},
		[]string{"method", "outcome"},
	)

	// RPCRequestDuration tracks upstream RPC latency
	RPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "burntracker_rpc_request_duration_seconds",
			Help:    "Upstream RPC request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// RPCEndpoints tracks the size of the active endpoint list
	RPCEndpoints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "burntracker_rpc_endpoints",
			Help: "Number of upstream RPC endpoints currently in rotation",
		},
	)

	// ReconciliationsTotal counts finished reconciliations by trigger and outcome
	ReconciliationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burntracker_reconciliations_total",
			Help: "Total number of finished reconciliations",
		},
		[]string{"trigger", "outcome"},
	)

	// ReconciliationDuration tracks time from first fetch to terminal state
	ReconciliationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "burntracker_reconciliation_duration_seconds",
			Help:    "Reconciliation duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"trigger"},
	)

	// InFlightReconciliations tracks signatures currently owned by the worker
	InFlightReconciliations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "burntracker_reconciliations_in_flight",
			Help: "Number of signatures with a scheduled or running reconciliation",
		},
	)

	// SweepItemsTotal counts sweep items by outcome
	SweepItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burntracker_sweep_items_total",
			Help: "Total number of unreconciled rows processed by the sweeper",
		},
		[]string{"outcome"},
	)

	// CacheRefreshesTotal counts read cache recomputations by trigger
	CacheRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burntracker_cache_refreshes_total",
			Help: "Total number of read cache refreshes",
		},
		[]string{"trigger", "status"},
	)

	// CacheRefreshDuration tracks the aggregate recomputation time
	CacheRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "burntracker_cache_refresh_duration_seconds",
			Help:    "Read cache refresh duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ConfirmationsTotal counts gateway confirmation polls by outcome
	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burntracker_gateway_confirmations_total",
			Help: "Total number of confirmation polls handled by the gateway",
		},
		[]string{"outcome"},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burntracker_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
