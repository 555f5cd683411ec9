// Package metrics defines the Prometheus collectors for imports, reports and
// HTTP requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hours"

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ImportsTotal      *prometheus.CounterVec
	ImportDuration    prometheus.Histogram
	SnapshotTimeLogs  prometheus.Gauge
	SnapshotTimestamp prometheus.Gauge

	ReportsTotal   *prometheus.CounterVec
	ReportDuration *prometheus.HistogramVec

	RequestsTotal *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ImportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "total",
			Help:      "Archive imports by status",
		}, []string{"status"}),
		ImportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "Time to read an archive and build a snapshot",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SnapshotTimeLogs: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "timelogs",
			Help:      "Time logs held by the published snapshot",
		}),
		SnapshotTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "imported_timestamp_seconds",
			Help:      "Unix time the published snapshot was built",
		}),
		ReportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "total",
			Help:      "Report computations by report and status",
		}, []string{"report", "status"}),
		ReportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "duration_seconds",
			Help:      "Report computation latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"report"}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ImportFinished records one import attempt. The snapshot gauges only move on
// success.
func (m *Metrics) ImportFinished(d time.Duration, timeLogs int, at time.Time, err error) {
	if m == nil {
		return
	}
	m.ImportsTotal.WithLabelValues(status(err)).Inc()
	m.ImportDuration.Observe(d.Seconds())
	if err == nil {
		m.SnapshotTimeLogs.Set(float64(timeLogs))
		m.SnapshotTimestamp.Set(float64(at.Unix()))
	}
}

// ReportFinished records one report computation.
func (m *Metrics) ReportFinished(report string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(report, status(err)).Inc()
	m.ReportDuration.WithLabelValues(report).Observe(d.Seconds())
}

// ObserveRequest counts one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
