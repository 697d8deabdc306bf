// Package metrics exposes application counters for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var processStartedAt = time.Now().UTC()

type Metrics struct {
	registry *prometheus.Registry

	AssessmentsSubmitted prometheus.Counter
	SubmissionsRejected  *prometheus.CounterVec
	ReportsRendered      *prometheus.CounterVec
	AggregationDuration  prometheus.Histogram
	LoginAttempts        *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	_ = reg.Register(collectors.NewGoCollector())
	_ = reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "compliance_hub_uptime_seconds",
		Help: "Process uptime in seconds.",
	}, func() float64 {
		return time.Since(processStartedAt).Seconds()
	}))

	m := &Metrics{
		registry: reg,
		AssessmentsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "compliance_hub_assessments_submitted_total",
			Help: "Assessments persisted with all their results.",
		}),
		SubmissionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_hub_submissions_rejected_total",
			Help: "Assessment submissions rejected before persisting.",
		}, []string{"reason"}),
		ReportsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_hub_reports_rendered_total",
			Help: "Compliance reports rendered by output format.",
		}, []string{"format"}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "compliance_hub_aggregation_duration_seconds",
			Help:    "Time to load results and aggregate one assessment.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_hub_login_attempts_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.AssessmentsSubmitted, m.SubmissionsRejected, m.ReportsRendered, m.AggregationDuration, m.LoginAttempts)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAggregation records the time since start.
func (m *Metrics) ObserveAggregation(start time.Time) {
	if m == nil {
		return
	}
	m.AggregationDuration.Observe(time.Since(start).Seconds())
}
