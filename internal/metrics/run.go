package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Release states reported by ReleasesGauge.
const (
	StateKept      = "kept"
	StateDeleted   = "deleted"
	StateSkipped   = "skipped"
	StateUnmanaged = "unmanaged"
	StateProtected = "protected"
)

// Deletion kinds and results reported by DeletionsCounter.
const (
	KindRelease = "release"
	KindTag     = "tag"

	ResultSuccess = "success"
	ResultFailed  = "failed"
	ResultDryRun  = "dry_run"
)

// RunMetrics holds the metrics of one pruning run.
// All methods are safe to call on a nil *RunMetrics.
type RunMetrics struct {
	// ReleasesGauge tracks how many releases ended up in each state.
	// Labels: state (kept, deleted, skipped, unmanaged, protected)
	ReleasesGauge *prometheus.GaugeVec

	// DeletionsCounter counts deletion calls.
	// Labels: kind (release, tag), result (success, failed, dry_run)
	DeletionsCounter *prometheus.CounterVec

	// RunDurationGauge is the wall time of the last run in seconds.
	RunDurationGauge prometheus.Gauge

	// LastRunGauge is the unix time the last run finished.
	LastRunGauge prometheus.Gauge

	reg *prometheus.Registry
}

// NewRunMetrics creates run metrics on a fresh private registry.
func NewRunMetrics() *RunMetrics {
	return NewRunMetricsWithRegistry(prometheus.NewRegistry())
}

// NewRunMetricsWithRegistry creates run metrics registered with reg.
func NewRunMetricsWithRegistry(reg *prometheus.Registry) *RunMetrics {
	m := &RunMetrics{
		ReleasesGauge: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "relprune",
				Name:      "releases",
				Help:      "Number of releases per retention state in the last run.",
			},
			[]string{"state"},
		),
		DeletionsCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "relprune",
				Name:      "deletions_total",
				Help:      "Deletion calls issued, by kind and result.",
			},
			[]string{"kind", "result"},
		),
		RunDurationGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "relprune",
				Name:      "run_duration_seconds",
				Help:      "Wall time of the last run in seconds.",
			},
		),
		LastRunGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "relprune",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last run finished.",
			},
		),
		reg: reg,
	}

	reg.MustRegister(m.ReleasesGauge, m.DeletionsCounter, m.RunDurationGauge, m.LastRunGauge)

	return m
}

// SetReleases records the number of releases in state.
func (m *RunMetrics) SetReleases(state string, n int) {
	if m == nil {
		return
	}
	m.ReleasesGauge.WithLabelValues(state).Set(float64(n))
}

// RecordDeletion counts one deletion call of kind with result.
func (m *RunMetrics) RecordDeletion(kind, result string) {
	if m == nil {
		return
	}
	m.DeletionsCounter.WithLabelValues(kind, result).Inc()
}

// ObserveRun records the run duration and the finishing time.
func (m *RunMetrics) ObserveRun(start, end time.Time) {
	if m == nil {
		return
	}
	m.RunDurationGauge.Set(end.Sub(start).Seconds())
	m.LastRunGauge.Set(float64(end.Unix()))
}

// WriteTextfile writes the registry in text exposition format to path.
// The file is written atomically, as the textfile collector expects.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
