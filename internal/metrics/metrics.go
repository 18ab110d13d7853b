package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Caption outcome labels.
const (
	CaptionOK            = "ok"
	CaptionNotConfigured = "not_configured"
	CaptionFailed        = "failed"
	CaptionEmpty         = "empty"
)

type Metrics struct {
	RecordsCreated     prometheus.Counter
	RecordsDeleted     prometheus.Counter
	Captions           *prometheus.CounterVec
	MalformedRecovered prometheus.Counter
	ReportsArchived    prometheus.Counter
	ReportDuration     prometheus.Histogram
}

// NewMetrics registers the collectors on reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldlog_records_created_total",
			Help: "Total number of service records created",
		}),
		RecordsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldlog_records_deleted_total",
			Help: "Total number of service records deleted",
		}),
		Captions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldlog_captions_total",
			Help: "Photo caption requests by outcome",
		}, []string{"outcome"}),
		MalformedRecovered: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldlog_malformed_data_recoveries_total",
			Help: "Number of times malformed stored records were replaced by an empty collection",
		}),
		ReportsArchived: f.NewCounter(prometheus.CounterOpts{
			Name: "fieldlog_reports_archived_total",
			Help: "Total number of report files saved to the archive",
		}),
		ReportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fieldlog_report_build_duration_seconds",
			Help:    "Time spent filtering and projecting report rows",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

func (m *Metrics) CaptionOutcome(outcome string) {
	m.Captions.WithLabelValues(outcome).Inc()
}
