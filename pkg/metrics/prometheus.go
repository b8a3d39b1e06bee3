package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values used by the Record helpers.
const (
	OutcomePriced     = "priced"
	OutcomeIncomplete = "incomplete"
	OutcomeRejected   = "rejected"

	ResultResolved   = "resolved"
	ResultUnresolved = "unresolved"

	ResultOK    = "ok"
	ResultError = "error"
)

var nightBuckets = []float64{1, 2, 3, 4, 5, 7, 10, 14}

// subsystem groups every family under <namespace>_pricing_.
const subsystem = "pricing"

// Manager manages all Prometheus metrics for the point chart service.
type Manager struct {
	namespace      string
	latencyBuckets []float64
	enabled        bool
	registry       prometheus.Registerer

	// Pricing
	stayQuotes       *prometheus.CounterVec
	stayNights       prometheus.Histogram
	roomComparisons  prometheus.Counter
	heatmapRenders   *prometheus.CounterVec
	computeLatency   *prometheus.HistogramVec
	scenarioRuns     prometheus.Counter
	scenarioBookings *prometheus.CounterVec
	tripExplores     prometheus.Counter
	tripOptions      prometheus.Histogram

	// Chart store and derived-table cache
	chartLoads   *prometheus.CounterVec
	chartsLoaded prometheus.Gauge
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         prometheus.Counter

	// Errors
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "pointchart",
		latencyBuckets: DefaultLatencyBuckets,
		enabled:        true,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.stayQuotes = auto.NewCounterVec(
		m.counterOpts("stay_quotes_total", "Stay quotes by outcome (priced, incomplete, rejected)"),
		[]string{"outcome"},
	)
	m.stayNights = auto.NewHistogram(m.histogramOpts("stay_nights", "Nights per quoted stay", nightBuckets))
	m.roomComparisons = auto.NewCounter(m.counterOpts("room_comparisons_total", "Stay comparisons across rooms"))
	m.heatmapRenders = auto.NewCounterVec(
		m.counterOpts("heatmap_renders_total", "Heat-map views rendered by scope (room, chart)"),
		[]string{"scope"},
	)
	m.computeLatency = auto.NewHistogramVec(
		m.histogramOpts("compute_duration_milliseconds", "Pricing computation time by operation", m.latencyBuckets),
		[]string{"operation"},
	)
	m.scenarioRuns = auto.NewCounter(m.counterOpts("scenario_evaluations_total", "Scenario evaluations"))
	m.scenarioBookings = auto.NewCounterVec(
		m.counterOpts("scenario_bookings_total", "Hypothetical bookings by result (resolved, unresolved)"),
		[]string{"result"},
	)
	m.tripExplores = auto.NewCounter(m.counterOpts("trip_explorations_total", "Affordable trip searches"))
	m.tripOptions = auto.NewHistogram(m.histogramOpts("trip_options", "Affordable options per trip search",
		prometheus.ExponentialBuckets(1, 4, 6)))

	m.chartLoads = auto.NewCounterVec(
		m.counterOpts("chart_loads_total", "Chart file loads by format and result"),
		[]string{"format", "result"},
	)
	m.chartsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "charts_loaded",
		Help:      "Charts currently held by the store",
	})
	m.cacheHits = auto.NewCounter(m.counterOpts("day_table_cache_hits_total", "Day table cache hits"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("day_table_cache_misses_total", "Day table cache misses"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.rateLimited = auto.NewCounter(m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"))

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
}

// Enabled reports whether the global manager records observations.
func Enabled() bool { return globalManager.enabled }

// RecordStayQuote counts a stay quote and, unless rejected, its length.
func RecordStayQuote(outcome string, nights int) {
	if !globalManager.enabled {
		return
	}
	globalManager.stayQuotes.WithLabelValues(outcome).Inc()
	if outcome != OutcomeRejected {
		globalManager.stayNights.Observe(float64(nights))
	}
}

// RecordRoomComparison counts a CompareRooms call.
func RecordRoomComparison() {
	if globalManager.enabled {
		globalManager.roomComparisons.Inc()
	}
}

// RecordHeatmapRender counts a heat-map view by scope.
func RecordHeatmapRender(scope string) {
	if globalManager.enabled {
		globalManager.heatmapRenders.WithLabelValues(scope).Inc()
	}
}

// RecordComputeLatency records how long a pricing operation took.
func RecordComputeLatency(operation string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.computeLatency.WithLabelValues(operation).Observe(latencyMs)
	}
}

// RecordScenarioEvaluation counts one evaluation and its booking results.
func RecordScenarioEvaluation(resolved, unresolved int) {
	if !globalManager.enabled {
		return
	}
	globalManager.scenarioRuns.Inc()
	globalManager.scenarioBookings.WithLabelValues(ResultResolved).Add(float64(resolved))
	globalManager.scenarioBookings.WithLabelValues(ResultUnresolved).Add(float64(unresolved))
}

// RecordTripExploration counts one affordable trip search and its option count.
func RecordTripExploration(options int) {
	if !globalManager.enabled {
		return
	}
	globalManager.tripExplores.Inc()
	globalManager.tripOptions.Observe(float64(options))
}

// RecordChartLoad counts a chart file load.
func RecordChartLoad(format, result string) {
	if globalManager.enabled {
		globalManager.chartLoads.WithLabelValues(format, result).Inc()
	}
}

// UpdateChartsLoaded sets the number of charts held by the store.
func UpdateChartsLoaded(count int) {
	if globalManager.enabled {
		globalManager.chartsLoaded.Set(float64(count))
	}
}

// RecordCacheHit increments the day table cache hit counter.
func RecordCacheHit() {
	if globalManager.enabled {
		globalManager.cacheHits.Inc()
	}
}

// RecordCacheMiss increments the day table cache miss counter.
func RecordCacheMiss() {
	if globalManager.enabled {
		globalManager.cacheMisses.Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordRateLimited increments the rate limiter rejection counter.
func RecordRateLimited() {
	if globalManager.enabled {
		globalManager.rateLimited.Inc()
	}
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// Configure replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before anything is recorded.
func Configure(opts ...Option) {
	reg := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(reg))...)
	customRegistry = reg
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
