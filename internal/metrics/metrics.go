// Package metrics exposes prometheus collectors for the sync pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeSkipped    = "skipped"
	OutcomeFetchError = "fetch_error"
	OutcomeError      = "error"
)

// Record outcomes.
const (
	RecordInserted  = "inserted"
	RecordDuplicate = "duplicate"
	RecordFailed    = "failed"
	RecordIgnored   = "ignored"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	syncRuns     *prometheus.CounterVec
	syncDuration prometheus.Histogram
	records      *prometheus.CounterVec
	alerts       *prometheus.CounterVec
	inboxStaged  prometheus.Counter
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		syncRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momopress_sync_runs_total",
				Help: "Total number of sync cycles by outcome",
			},
			[]string{"mode", "outcome"},
		),
		syncDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "momopress_sync_duration_seconds",
				Help:    "Duration of completed sync cycles",
				Buckets: prometheus.DefBuckets,
			},
		),
		records: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momopress_records_total",
				Help: "Parsed messages by category and ingestion outcome",
			},
			[]string{"category", "outcome"},
		),
		alerts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momopress_budget_alerts_total",
				Help: "Budget alerts raised by label",
			},
			[]string{"label"},
		),
		inboxStaged: f.NewCounter(
			prometheus.CounterOpts{
				Name: "momopress_inbox_staged_total",
				Help: "Raw messages staged through the pipeline endpoint",
			},
		),
	}
}

// SyncRun counts a finished or dropped sync cycle.
func (m *Metrics) SyncRun(incremental bool, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	mode := "full"
	if incremental {
		mode = "incremental"
	}
	m.syncRuns.WithLabelValues(mode, outcome).Inc()
	if outcome == OutcomeOK {
		m.syncDuration.Observe(took.Seconds())
	}
}

// Record counts one parsed message.
func (m *Metrics) Record(category, outcome string) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(category, outcome).Inc()
}

// Alert counts one raised alert.
func (m *Metrics) Alert(label string) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(label).Inc()
}

// InboxStaged counts messages accepted into the inbox.
func (m *Metrics) InboxStaged(n int) {
	if m == nil {
		return
	}
	m.inboxStaged.Add(float64(n))
}
