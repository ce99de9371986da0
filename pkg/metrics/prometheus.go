// Package metrics provides Prometheus metrics for the stream bingo service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the bingo service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Game Metrics - what the round looks like right now
	cardsIssued    prometheus.Counter
	cellMarks      prometheus.Counter
	cellUnmarks    prometheus.Counter
	bingosAchieved prometheus.Counter
	activePlayers  prometheus.Gauge
	deckCount      prometheus.Gauge

	// Report Pipeline Metrics - crowd reporting quality
	eventReports     prometheus.Counter
	duplicateReports prometheus.Counter
	eventsConfirmed  prometheus.Counter
	eventsRejected   prometheus.Counter
	pendingEvents    prometheus.Gauge

	// Win Ledger Metrics
	winsSubmitted prometheus.Counter
	winsConfirmed prometheus.Counter
	winsRejected  prometheus.Counter
	pendingWins   prometheus.Gauge

	// Adapter Health Metrics
	persistenceErrors prometheus.Counter
	notifyErrors      prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "streambingo",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cardsIssued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cards_issued_total",
		Help:      "Total number of bingo cards issued to players",
	})
	m.cellMarks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cell_marks_total",
		Help:      "Total number of cells marked by players",
	})
	m.cellUnmarks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cell_unmarks_total",
		Help:      "Total number of cells unmarked by players",
	})
	m.bingosAchieved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bingos_achieved_total",
		Help:      "Total number of bingos achieved",
	})
	m.activePlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_players",
		Help:      "Current number of players holding a card",
	})
	m.deckCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deck_count",
		Help:      "Current number of decks in the library",
	})

	m.eventReports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_reports_total",
		Help:      "Total number of accepted event reports",
	})
	m.duplicateReports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_reports_duplicate_total",
		Help:      "Total number of repeat reports dropped per reporter",
	})
	m.eventsConfirmed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_confirmed_total",
		Help:      "Total number of events confirmed by the streamer",
	})
	m.eventsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_rejected_total",
		Help:      "Total number of events rejected by the streamer",
	})
	m.pendingEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pending_events",
		Help:      "Current number of events awaiting adjudication",
	})

	m.winsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wins_submitted_total",
		Help:      "Total number of win submissions",
	})
	m.winsConfirmed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wins_confirmed_total",
		Help:      "Total number of confirmed wins",
	})
	m.winsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "wins_rejected_total",
		Help:      "Total number of rejected win submissions",
	})
	m.pendingWins = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pending_wins",
		Help:      "Current number of win submissions awaiting adjudication",
	})

	m.persistenceErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_errors_total",
		Help:      "Total number of snapshot save/load failures",
	})
	m.notifyErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notify_errors_total",
		Help:      "Total number of notification publish failures",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Game metrics.
func RecordCardIssued()         { globalManager.cardsIssued.Inc() }
func RecordCellMark()           { globalManager.cellMarks.Inc() }
func RecordCellUnmark()         { globalManager.cellUnmarks.Inc() }
func RecordBingoAchieved()      { globalManager.bingosAchieved.Inc() }
func UpdateActivePlayers(n int) { globalManager.activePlayers.Set(float64(n)) }
func UpdateDeckCount(n int)     { globalManager.deckCount.Set(float64(n)) }

// Report pipeline metrics.
func RecordEventReport()        { globalManager.eventReports.Inc() }
func RecordDuplicateReport()    { globalManager.duplicateReports.Inc() }
func RecordEventConfirmed()     { globalManager.eventsConfirmed.Inc() }
func RecordEventRejected()      { globalManager.eventsRejected.Inc() }
func UpdatePendingEvents(n int) { globalManager.pendingEvents.Set(float64(n)) }

// Win ledger metrics.
func RecordWinSubmitted()     { globalManager.winsSubmitted.Inc() }
func RecordWinConfirmed()     { globalManager.winsConfirmed.Inc() }
func RecordWinRejected()      { globalManager.winsRejected.Inc() }
func UpdatePendingWins(n int) { globalManager.pendingWins.Set(float64(n)) }

// Adapter health metrics.
func RecordPersistenceError() { globalManager.persistenceErrors.Inc() }
func RecordNotifyError()      { globalManager.notifyErrors.Inc() }

// HTTP metrics.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// System metrics.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPauseTime.Observe(ms)
}
