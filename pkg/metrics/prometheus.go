package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	upstreamFetch *prometheus.CounterVec
	droppedRows   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "candlecache_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"symbol"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "candlecache_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"symbol"},
		),
		upstreamFetch: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "candlecache_upstream_fetches_total",
				Help: "Total number of upstream fetch attempts by result",
			},
			[]string{"symbol", "result"},
		),
		droppedRows: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "candlecache_dropped_rows_total",
				Help: "Total number of malformed feed rows dropped during parsing",
			},
			[]string{"symbol"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "candlecache_last_price",
				Help: "Last served price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "candlecache_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCacheHit records a cache hit for a symbol.
func (r *Recorder) RecordCacheHit(symbol string) {
	r.cacheHits.WithLabelValues(symbol).Inc()
}

// RecordCacheMiss records a cache miss for a symbol.
func (r *Recorder) RecordCacheMiss(symbol string) {
	r.cacheMisses.WithLabelValues(symbol).Inc()
}

// RecordUpstreamFetch records an upstream fetch attempt and its result.
func (r *Recorder) RecordUpstreamFetch(symbol, result string) {
	r.upstreamFetch.WithLabelValues(symbol, result).Inc()
}

// RecordDroppedRows records malformed rows dropped while parsing a feed.
func (r *Recorder) RecordDroppedRows(symbol string, n int) {
	if n <= 0 {
		return
	}
	r.droppedRows.WithLabelValues(symbol).Add(float64(n))
}

// RecordLastPrice records the last served price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
