// Package metrics exposes Prometheus collectors that report upload activity.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for the uploads counter.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeConfig     = "config"
	OutcomeRemote     = "remote"
)

// Metrics holds the collectors for the upload pipeline.
type Metrics struct {
	uploads       *prometheus.CounterVec
	uploadBytes   prometheus.Histogram
	branchCreates prometheus.Counter
	writeRetries  prometheus.Counter
}

// New constructs the collectors and registers them with reg. Callers supply
// a fresh prometheus.NewRegistry() when unique metric names are required
// (for example in tests).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gitbin",
			Subsystem: "upload",
			Name:      "uploads_total",
			Help:      "Uploads processed, labelled by outcome.",
		}, []string{"outcome"}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gitbin",
			Subsystem: "upload",
			Name:      "file_bytes",
			Help:      "Size distribution of accepted files.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
		branchCreates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gitbin",
			Subsystem: "upload",
			Name:      "branch_creates_total",
			Help:      "Branches created on demand while recovering a write.",
		}),
		writeRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gitbin",
			Subsystem: "upload",
			Name:      "write_retries_total",
			Help:      "File writes retried after creating the destination branch.",
		}),
	}
	reg.MustRegister(m.uploads, m.uploadBytes, m.branchCreates, m.writeRetries)
	return m
}

// ObserveUpload records one finished upload attempt.
func (m *Metrics) ObserveUpload(outcome string, size int64) {
	m.uploads.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.uploadBytes.Observe(float64(size))
	}
}

// BranchCreated counts an on-demand branch creation.
func (m *Metrics) BranchCreated() {
	m.branchCreates.Inc()
}

// WriteRetried counts a write retried after branch recovery.
func (m *Metrics) WriteRetried() {
	m.writeRetries.Inc()
}
