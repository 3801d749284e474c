package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Trade metrics
	TradesExecuted *prometheus.CounterVec
	TradesRejected *prometheus.CounterVec
	TradeDuration  prometheus.Histogram
	TradeNotional  prometheus.Histogram
	FeesCollected  prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter

	// Portfolio metrics
	PortfolioRequests prometheus.Counter
	PortfolioDuration prometheus.Histogram

	// Quote metrics
	QuoteLookups    *prometheus.CounterVec
	QuoteCacheHits  prometheus.Counter
	QuoteCacheMiss  prometheus.Counter
	QuoteFeedErrors prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries  *prometheus.CounterVec
	DBDuration *prometheus.HistogramVec
	DBErrors   *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Trade metrics
		TradesExecuted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_trades_executed_total",
				Help: "Total number of trades executed by side",
			},
			[]string{"side"},
		),
		TradesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_trades_rejected_total",
				Help: "Total number of trades rejected by reason",
			},
			[]string{"reason"},
		),
		TradeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "papertrade_trade_duration_seconds",
			Help:    "Duration of trade execution",
			Buckets: prometheus.DefBuckets,
		}),
		TradeNotional: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "papertrade_trade_notional",
			Help:    "Trade notional values",
			Buckets: []float64{10, 100, 1000, 5000, 10000, 50000},
		}),
		FeesCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "papertrade_fees_collected_total",
			Help: "Cumulative fees charged across trades",
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "papertrade_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Portfolio metrics
		PortfolioRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "papertrade_portfolio_requests_total",
			Help: "Total number of portfolio valuations",
		}),
		PortfolioDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "papertrade_portfolio_duration_seconds",
			Help:    "Duration of portfolio valuation",
			Buckets: prometheus.DefBuckets,
		}),

		// Quote metrics
		QuoteLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_quote_lookups_total",
				Help: "Total quote lookups by outcome",
			},
			[]string{"outcome"},
		),
		QuoteCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "papertrade_quote_cache_hits_total",
			Help: "Total quote cache hits",
		}),
		QuoteCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "papertrade_quote_cache_misses_total",
			Help: "Total quote cache misses",
		}),
		QuoteFeedErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "papertrade_quote_feed_errors_total",
			Help: "Total quote feed errors",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "papertrade_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "papertrade_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papertrade_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
