package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "siteheader").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// LayoutParam is the route parameter holding the layout (default: "layout").
	LayoutParam string
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithLayoutParam sets the chi route parameter read for the layout label.
func WithLayoutParam(name string) MetricsOption {
	return func(c *MetricsConfig) {
		c.LayoutParam = name
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "siteheader",
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
		LayoutParam: "layout",
	}
}

type metrics struct {
	rendersTotal    *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	publishedTotal  *prometheus.CounterVec
	liveConnections prometheus.Gauge
}

// globalMetrics is created by the first call to Prometheus and shared by
// the Record functions.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of header renders by layout and status",
			ConstLabels: config.ConstLabels,
		}, []string{"layout", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Header render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"layout"}),

		publishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fragments_published_total",
			Help:        "Total number of header fragments uploaded by layout and status",
			ConstLabels: config.ConstLabels,
		}, []string{"layout", "status"}),

		liveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_connections",
			Help:        "Number of open live location connections",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that counts and times header renders.
// Mount it on routes that carry the layout parameter.
//
// Metrics collected:
//   - siteheader_renders_total: Counter of renders by layout and HTTP status
//   - siteheader_render_duration_seconds: Histogram of render duration by layout
//   - siteheader_fragments_published_total: Counter of uploads (RecordPublish)
//   - siteheader_live_connections: Gauge of live sockets (RecordLiveOpen/Close)
//
// Example:
//
//	r.With(middleware.Prometheus()).Get("/header/{layout}", h.ServeHeader)
//	r.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			layout := chi.URLParam(r, config.LayoutParam)
			if layout == "" {
				layout = "unknown"
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.record(layout, strconv.Itoa(status), time.Since(start))
		})
	}
}

func (m *metrics) record(layout, status string, d time.Duration) {
	m.renderDuration.WithLabelValues(layout).Observe(d.Seconds())
	m.rendersTotal.WithLabelValues(layout, status).Inc()
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordRender records a render that did not go through the HTTP
// middleware, such as a live channel update. Status is "ok" or "error".
func RecordRender(layout, status string, d time.Duration) {
	if m := current(); m != nil {
		m.record(layout, status, d)
	}
}

// RecordPublish records one fragment upload.
func RecordPublish(layout string, err error) {
	if m := current(); m != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.publishedTotal.WithLabelValues(layout, status).Inc()
	}
}

// RecordLiveOpen records a live connection being accepted.
func RecordLiveOpen() {
	if m := current(); m != nil {
		m.liveConnections.Inc()
	}
}

// RecordLiveClose records a live connection closing.
func RecordLiveClose() {
	if m := current(); m != nil {
		m.liveConnections.Dec()
	}
}

func current() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}
