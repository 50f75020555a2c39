package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Balance metrics
	BalancesCalculated prometheus.Counter
	BalanceDuration    prometheus.Histogram
	BalanceErrors      *prometheus.CounterVec
	ClosingBalance     *prometheus.GaugeVec
	OpeningOverrides   prometheus.Counter
	OutOfOrderRejected prometheus.Counter

	// Ledger metrics
	PurchasesRecorded    prometheus.Counter
	TransfersRecorded    prometheus.Counter
	AssignmentsRecorded  prometheus.Counter
	ExpendituresRecorded prometheus.Counter
	LedgerQuantity       *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Request log metrics
	RequestLogsCreated prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Balance metrics
		BalancesCalculated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_balances_calculated_total",
			Help: "Total number of balance snapshots calculated",
		}),
		BalanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "armory_balance_calculation_duration_seconds",
			Help:    "Duration of balance calculations",
			Buckets: prometheus.DefBuckets,
		}),
		BalanceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_balance_errors_total",
				Help: "Total number of balance calculation errors by type",
			},
			[]string{"error_type"},
		),
		ClosingBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "armory_closing_balance",
				Help: "Latest computed closing balance",
			},
			[]string{"base_id", "equipment_id"},
		),
		OpeningOverrides: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_opening_overrides_total",
			Help: "Total number of administrative opening balance overrides",
		}),
		OutOfOrderRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_out_of_order_rejected_total",
			Help: "Total number of calculations rejected for predating the latest snapshot",
		}),

		// Ledger metrics
		PurchasesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_purchases_recorded_total",
			Help: "Total number of purchases recorded",
		}),
		TransfersRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_transfers_recorded_total",
			Help: "Total number of transfers recorded",
		}),
		AssignmentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_assignments_recorded_total",
			Help: "Total number of assignments recorded",
		}),
		ExpendituresRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_expenditures_recorded_total",
			Help: "Total number of expenditures recorded",
		}),
		LedgerQuantity: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "armory_ledger_quantity",
				Help:    "Quantities recorded per ledger",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"ledger"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "armory_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "armory_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "armory_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_cache_hits_total",
				Help: "Total cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_cache_misses_total",
				Help: "Total cache misses",
			},
			[]string{"cache"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "armory_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Request log metrics
		RequestLogsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "armory_request_logs_total",
			Help: "Total request log entries created",
		}),
	}
}
