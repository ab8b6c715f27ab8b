package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the game metrics registered on one registry.
type Manager struct {
	namespace         string
	subsystem         string
	gameLengthBuckets []float64
	customLabels      map[string]string
	registry          prometheus.Registerer

	eventsApplied  *prometheus.CounterVec
	eventsIgnored  prometheus.Counter
	deuces         prometheus.Counter
	gamesCompleted *prometheus.CounterVec
	gameLength     prometheus.Histogram
}

var (
	globalManager  *Manager             //nolint:gochecknoglobals // singleton metrics manager
	customRegistry *prometheus.Registry //nolint:gochecknoglobals // registry without default Go collectors
)

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure rebuilds the global manager on a fresh registry. Call it before
// serving metrics when the namespace or labels come from configuration.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// metrics land on prometheus.DefaultRegisterer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:         "tennis",
		subsystem:         "game",
		gameLengthBuckets: prometheus.LinearBuckets(4, 2, 8),
		customLabels:      make(map[string]string),
		registry:          prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsApplied = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_applied_total",
		Help:        "Score events applied to a game in progress, by scoring player",
		ConstLabels: m.customLabels,
	}, []string{"event"})

	m.eventsIgnored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_ignored_total",
		Help:        "Score events received after the game was decided",
		ConstLabels: m.customLabels,
	})

	m.deuces = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "deuces_total",
		Help:        "Times a game reached 40-40",
		ConstLabels: m.customLabels,
	})

	m.gamesCompleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "games_completed_total",
		Help:        "Games decided, by winning player",
		ConstLabels: m.customLabels,
	}, []string{"winner"})

	m.gameLength = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "game_length_points",
		Help:        "Points played in a decided game",
		Buckets:     m.gameLengthBuckets,
		ConstLabels: m.customLabels,
	})
}

// RecordEventApplied counts an event that changed a game in progress.
func (m *Manager) RecordEventApplied(event string) {
	m.eventsApplied.WithLabelValues(event).Inc()
}

// RecordEventIgnored counts an event that arrived after the game was decided.
func (m *Manager) RecordEventIgnored() {
	m.eventsIgnored.Inc()
}

// RecordDeuce counts a game reaching 40-40.
func (m *Manager) RecordDeuce() {
	m.deuces.Inc()
}

// RecordGameCompleted counts a decided game and observes its length.
func (m *Manager) RecordGameCompleted(winner string, points int) {
	m.gamesCompleted.WithLabelValues(winner).Inc()
	m.gameLength.Observe(float64(points))
}

// RecordEventApplied records on the global manager.
func RecordEventApplied(event string) { globalManager.RecordEventApplied(event) }

// RecordEventIgnored records on the global manager.
func RecordEventIgnored() { globalManager.RecordEventIgnored() }

// RecordDeuce records on the global manager.
func RecordDeuce() { globalManager.RecordDeuce() }

// RecordGameCompleted records on the global manager.
func RecordGameCompleted(winner string, points int) {
	globalManager.RecordGameCompleted(winner, points)
}

// Global records through the package helpers, so it always reaches the
// manager installed by the latest Configure.
var Global globalRecorder //nolint:gochecknoglobals // stateless handle on the global manager

type globalRecorder struct{}

func (globalRecorder) RecordEventApplied(event string) { RecordEventApplied(event) }
func (globalRecorder) RecordEventIgnored()             { RecordEventIgnored() }
func (globalRecorder) RecordDeuce()                    { RecordDeuce() }
func (globalRecorder) RecordGameCompleted(winner string, points int) {
	RecordGameCompleted(winner, points)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
