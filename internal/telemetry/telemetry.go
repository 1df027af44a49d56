// Package telemetry exposes Prometheus metrics and the OpenTelemetry tracer
// for SoulsData.
package telemetry

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "soulsdata"

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Intake rejection reasons.
const (
	RejectValidation = "validation"
	RejectDuplicate  = "duplicate"
	RejectThrottled  = "throttled"
)

// Metrics holds the SoulsData collectors.
type Metrics struct {
	EntriesCreated  *prometheus.CounterVec
	EntriesRejected *prometheus.CounterVec
	EntriesDeleted  prometheus.Counter

	ReportsBuilt        *prometheus.CounterVec
	ReportBuildDuration prometheus.Histogram
	SnapshotSize        prometheus.Gauge
	UndatedEntries      prometheus.Gauge

	SnapshotCache *prometheus.CounterVec
	DigestRuns    *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge
}

// Provider bundles metrics, their registry and the tracer.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	registry *prometheus.Registry
}

// NewProvider creates a provider with its own registry, so tests can build
// as many as they like.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  initMetrics(promauto.With(reg)),
		registry: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Gatherer exposes the registry for tests.
func (p *Provider) Gatherer() prometheus.Gatherer {
	return p.registry
}

func initMetrics(f promauto.Factory) *Metrics {
	return &Metrics{
		EntriesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soulsdata_entries_created_total",
			Help: "Entries recorded, by category",
		}, []string{"category"}),
		EntriesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soulsdata_entries_rejected_total",
			Help: "Entry submissions refused, by reason",
		}, []string{"reason"}),
		EntriesDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "soulsdata_entries_deleted_total",
			Help: "Entries deleted",
		}),
		ReportsBuilt: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soulsdata_reports_built_total",
			Help: "Reports built, by window in days",
		}, []string{"window_days"}),
		ReportBuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "soulsdata_report_build_duration_seconds",
			Help:    "Time to load the snapshot and build a report",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SnapshotSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "soulsdata_snapshot_entries",
			Help: "Entries in the most recent reporting snapshot",
		}),
		UndatedEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "soulsdata_snapshot_undated_entries",
			Help: "Entries in the most recent snapshot whose date could not be parsed",
		}),
		SnapshotCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soulsdata_snapshot_cache_total",
			Help: "Snapshot cache lookups, by result",
		}, []string{"result"}),
		DigestRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soulsdata_digest_runs_total",
			Help: "Scheduled digest runs, by status",
		}, []string{"status"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soulsdata_http_requests_total",
			Help: "HTTP requests, by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soulsdata_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "soulsdata_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
	}
}

// WindowLabel formats a window for the window_days label.
func WindowLabel(days int) string {
	return strconv.Itoa(days)
}
