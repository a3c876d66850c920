package observability

import (
	"time"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the collections engine.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	brCodes         *prometheus.CounterVec
	remittances     *prometheus.CounterVec
	remittanceLines prometheus.Counter
	externalErrors  *prometheus.CounterVec
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
				Name:    "collections_operation_duration_seconds",
				Help:    "Duration of operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		brCodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collections_brcodes_total",
				Help: "Total PIX BR Codes by outcome.",
			},
			[]string{"status"},
		),
		remittances: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collections_remittances_total",
				Help: "Total remittance files by bank layout and outcome.",
			},
			[]string{"bank", "status"},
		),
		remittanceLines: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "collections_remittance_billets_total",
				Help: "Total billets written to remittance files.",
			},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collections_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collections_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collections_cache_misses_total",
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

// IncrBRCode counts a BR Code generation ("success" or "error").
func (m *Metrics) IncrBRCode(status string) {
	m.brCodes.WithLabelValues(status).Inc()
}

// IncrRemittance counts a remittance file for a bank layout.
func (m *Metrics) IncrRemittance(bank, status string) {
	m.remittances.WithLabelValues(bank, status).Inc()
}

// AddRemittanceBillets adds n billets written to remittance files.
func (m *Metrics) AddRemittanceBillets(n int) {
	m.remittanceLines.Add(float64(n))
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// Snapshot returns the counters served by GET /v1/metrics/collections.
func (m *Metrics) Snapshot() *domain.CollectionMetrics {
	hits := getCounterValue(m.cacheHits, "brcode")
	misses := getCounterValue(m.cacheMisses, "brcode")

	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &domain.CollectionMetrics{
		BRCodesGenerated:     int64(getCounterValue(m.brCodes, "success")),
		BRCodesFailed:        int64(getCounterValue(m.brCodes, "error")),
		RemittancesGenerated: int64(sumCounter(m.remittances, "status", "success")),
		RemittancesFailed:    int64(sumCounter(m.remittances, "status", "error")),
		ArchiveErrors:        int64(getCounterValue(m.externalErrors, "archive")),
		CacheHitRate:         hitRate,
		Period:               "all_time",
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

// sumCounter adds up every series of cv whose label name has value.
func sumCounter(cv *prometheus.CounterVec, name, value string) float64 {
	ch := make(chan prometheus.Metric)
	go func() {
		cv.Collect(ch)
		close(ch)
	}()

	var total float64
	for metric := range ch {
		m := &dto.Metric{}
		if err := metric.Write(m); err != nil || m.Counter == nil {
			continue
		}
		for _, lp := range m.GetLabel() {
			if lp.GetName() == name && lp.GetValue() == value {
				total += m.Counter.GetValue()
			}
		}
	}
	return total
}
