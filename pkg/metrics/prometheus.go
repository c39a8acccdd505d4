package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Range labels.
const (
	RangeCurrentPeriod = "current_period"
	RangeFullSeason    = "full_season"
)

// Soft condition labels. Both are tolerated data gaps, not failures.
const (
	ConditionNoActivePlayer     = "no_active_player"
	ConditionStarterNotInactive = "starter_not_inactive"
)

// latencyBuckets are milliseconds; a team summary is normally sub-millisecond.
var latencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100} //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the standings engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Summary metrics
	teamSummaries         *prometheus.CounterVec
	substitutionsCredited prometheus.Counter
	softConditions        *prometheus.CounterVec
	teamComputeLatency    prometheus.Histogram
	leaderboardCategories prometheus.Gauge
	teamsTotal            prometheus.Gauge

	// Run metrics
	runErrors         prometheus.Counter
	runLastDurationMs prometheus.Gauge
	runLastUnix       prometheus.Gauge
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
		namespace:        "courtside",
		subsystem:        "standings",
		histogramBuckets: latencyBuckets,
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

	m.teamSummaries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "team_summaries_total",
			Help:      "Total number of team range summaries computed, by range",
		},
		[]string{"range"},
	)

	m.substitutionsCredited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "substitutions_credited_total",
		Help:      "Total number of reserve games credited in place of inactive starters",
	})

	m.softConditions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "soft_conditions_total",
			Help:      "Tolerated data gaps met while resolving substitutions",
		},
		[]string{"condition"},
	)

	m.teamComputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "team_compute_latency_milliseconds",
		Help:      "Time spent building one team's timeline and summaries",
		Buckets:   m.histogramBuckets,
	})

	m.leaderboardCategories = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_categories",
		Help:      "Number of categories ranked in the last leaderboard",
	})

	m.teamsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams",
		Help:      "Number of teams in the last processed league",
	})

	m.runErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_errors_total",
		Help:      "Total number of failed standings runs",
	})

	m.runLastDurationMs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_last_duration_milliseconds",
		Help:      "Duration of the last standings run",
	})

	m.runLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_last_unix",
		Help:      "Unix time the last standings run finished",
	})
}

// RecordTeamSummary increments the summaries counter for a range label.
func RecordTeamSummary(rangeLabel string) {
	globalManager.teamSummaries.WithLabelValues(rangeLabel).Inc()
}

// RecordSubstitutions adds credited reserve games.
func RecordSubstitutions(n int) {
	if n > 0 {
		globalManager.substitutionsCredited.Add(float64(n))
	}
}

// RecordSoftCondition counts a tolerated data gap.
func RecordSoftCondition(condition string) {
	globalManager.softConditions.WithLabelValues(condition).Inc()
}

// RecordTeamComputeLatency records per-team latency in milliseconds.
func RecordTeamComputeLatency(latencyMs float64) {
	globalManager.teamComputeLatency.Observe(latencyMs)
}

// UpdateLeaderboardCategories sets the number of ranked categories.
func UpdateLeaderboardCategories(count int) {
	globalManager.leaderboardCategories.Set(float64(count))
}

// UpdateTeams sets the number of teams.
func UpdateTeams(count int) {
	globalManager.teamsTotal.Set(float64(count))
}

// RecordRunError increments the run errors counter.
func RecordRunError() {
	globalManager.runErrors.Inc()
}

// RecordRun stores duration and completion time of a finished run.
func RecordRun(durationMs float64, finishedUnix int64) {
	globalManager.runLastDurationMs.Set(durationMs)
	globalManager.runLastUnix.Set(float64(finishedUnix))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return errors.Mark(errors.Wrapf(err, "write %s", path), ErrExportFailed)
	}
	return nil
}
