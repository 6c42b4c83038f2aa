package observability

import (
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the pre-screening service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	computations    *prometheus.CounterVec
	storeErrors     *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prescreen_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		computations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prescreen_score_computations_total",
				Help: "Total score computations by resulting recommendation.",
			},
			[]string{"recommendation"},
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prescreen_store_errors_total",
				Help: "Total errors from the supplier store by collection.",
			},
			[]string{"collection"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prescreen_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prescreen_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrComputation increments the computation counter for a recommendation.
func (m *Metrics) IncrComputation(recommendation string) {
	m.computations.WithLabelValues(recommendation).Inc()
}

// IncrStoreError increments the store error counter for a collection.
func (m *Metrics) IncrStoreError(collection string) {
	m.storeErrors.WithLabelValues(collection).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// GetScoringSnapshot returns a snapshot of scoring counters suitable for
// the GET /v1/metrics/scoring endpoint.
func (m *Metrics) GetScoringSnapshot() *domain.ScoringMetrics {
	approved := getCounterValue(m.computations, domain.RecommendationApproved)
	pending := getCounterValue(m.computations, domain.RecommendationPending)
	rejected := getCounterValue(m.computations, domain.RecommendationRejected)
	total := approved + pending + rejected

	cacheHits := getCounterValue(m.cacheHits, "supplier")
	cacheMisses := getCounterValue(m.cacheMisses, "supplier")

	approvalRate := float64(0)
	if total > 0 {
		approvalRate = approved / total
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.ScoringMetrics{
		TotalComputations: int64(total),
		Approved:          int64(approved),
		Pending:           int64(pending),
		Rejected:          int64(rejected),
		ApprovalRate:      approvalRate,
		CacheHitRate:      cacheHitRate,
		Period:            "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
